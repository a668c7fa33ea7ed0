package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplateConstant          = "<%s>"
	choiceSeparatorConstant                    = "|"
	choiceUsageBareTemplateConstant            = "`%s`"
	choiceUsageWithDescriptionTemplateConstant = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string whose placeholder lists every
// accepted value with the default value upper-cased. The placeholder is
// backtick-quoted so pflag adopts it as the flag's variable name.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := fmt.Sprintf(choicePlaceholderTemplateConstant, strings.Join(renderChoiceList(defaultChoice, choices), choiceSeparatorConstant))

	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceUsageBareTemplateConstant, placeholder)
	}

	return fmt.Sprintf(choiceUsageWithDescriptionTemplateConstant, placeholder, trimmedDescription)
}

// renderChoiceList trims and de-duplicates the accepted values while keeping
// their order, upper-casing the entry that matches the default.
func renderChoiceList(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	renderedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))
	for _, candidateChoice := range choices {
		trimmedChoice := strings.TrimSpace(candidateChoice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			renderedChoices = append(renderedChoices, strings.ToUpper(trimmedChoice))
			continue
		}
		renderedChoices = append(renderedChoices, trimmedChoice)
	}

	return renderedChoices
}
