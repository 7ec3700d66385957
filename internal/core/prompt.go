package core

import "fmt"

// CommitTypes is the closed set of type tags the model may use.
var CommitTypes = []string{"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore"}

const SystemPrompt = `You are an expert software engineer who writes git commit messages following the Conventional Commits convention.

Each commit message has the form:
<type>(<scope>): <subject>

Allowed types:
• feat: a new feature
• fix: a bug fix
• docs: documentation only changes
• style: changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc)
• refactor: a code change that neither fixes a bug nor adds a feature
• perf: a code change that improves performance
• test: adding missing tests or correcting existing tests
• chore: changes to the build process or auxiliary tools and libraries

The scope is optional. The subject is a short imperative description of the change.`

// UserPrompt embeds the staged diff with the output instructions.
func UserPrompt(diff string) string {
	return fmt.Sprintf(`Here is the output of git diff --cached:

%s

Write 1 to 3 candidate commit messages for these changes.
• Put each message on its own line, with no numbering, bullets or extra text.
• Start the subject with a lowercase letter and do not end it with a period.
• Avoid a scope unless it is really necessary.`, diff)
}
