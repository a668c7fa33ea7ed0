package flags

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueValueConstant          = "true"
	toggleFalseValueConstant         = "false"
	toggleYesValueConstant           = "yes"
	toggleNoValueConstant            = "no"
	toggleOnValueConstant            = "on"
	toggleOffValueConstant           = "off"
	toggleShortYesValueConstant      = "y"
	toggleShortNoValueConstant       = "n"
	toggleBoolTypeNameConstant       = "bool"
	longFlagPrefixConstant           = "--"
	shortFlagPrefixConstant          = "-"
	flagTerminatorConstant           = "--"
	flagAssignmentSeparatorConstant  = "="
	toggleParseErrorTemplateConstant = "invalid toggle value %q"
)

// AddToggleFlag registers a boolean flag accepting yes/no style literals in
// addition to standard boolean syntax. Bare occurrences ("--flag") parse as
// true and, after NormalizeToggleArguments, space-separated values
// ("--flag no") bind as well.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleState := newToggleValue(defaultValue, target)
	if len(shorthand) > 0 {
		flagSet.VarP(toggleState, name, shorthand, usage)
	} else {
		flagSet.Var(toggleState, name, usage)
	}

	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueValueConstant
	registeredFlag.Usage = formatToggleUsage(usage, defaultValue)

	registeredToggleFlags.register(name, shorthand)
}

// NormalizeToggleArguments rewrites registered toggle flags given as
// "--flag value" into "--flag=value" so pflag can bind the optional value.
// Arguments after a bare "--" pass through untouched.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalizedArguments := make([]string, 0, len(arguments))
	argumentIndex := 0
	for argumentIndex < len(arguments) {
		currentArgument := arguments[argumentIndex]
		if currentArgument == flagTerminatorConstant {
			normalizedArguments = append(normalizedArguments, arguments[argumentIndex:]...)
			break
		}

		token, isFlagToken := parseFlagToken(currentArgument)
		if !isFlagToken || !registeredToggleFlags.contains(token) || token.hasValue || argumentIndex+1 >= len(arguments) {
			normalizedArguments = append(normalizedArguments, currentArgument)
			argumentIndex++
			continue
		}

		nextArgument := arguments[argumentIndex+1]
		if strings.HasPrefix(nextArgument, shortFlagPrefixConstant) {
			normalizedArguments = append(normalizedArguments, currentArgument)
			argumentIndex++
			continue
		}

		normalizedArguments = append(normalizedArguments, currentArgument+flagAssignmentSeparatorConstant+nextArgument)
		argumentIndex += 2
	}

	return normalizedArguments
}

// formatToggleUsage renders the usage string with a yes/no placeholder whose
// default side is upper-cased.
func formatToggleUsage(description string, defaultValue bool) string {
	defaultLiteral := toggleNoValueConstant
	if defaultValue {
		defaultLiteral = toggleYesValueConstant
	}

	return FormatChoiceUsage(defaultLiteral, []string{toggleYesValueConstant, toggleNoValueConstant}, description)
}

type toggleValue struct {
	state       bool
	boundTarget *bool
}

func newToggleValue(defaultValue bool, boundTarget *bool) *toggleValue {
	if boundTarget != nil {
		*boundTarget = defaultValue
	}
	return &toggleValue{state: defaultValue, boundTarget: boundTarget}
}

func (value *toggleValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.state = parsedValue
	if value.boundTarget != nil {
		*value.boundTarget = parsedValue
	}

	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.state {
		return toggleTrueValueConstant
	}
	return toggleFalseValueConstant
}

func (value *toggleValue) Type() string {
	return toggleBoolTypeNameConstant
}

// parseToggleValue accepts standard boolean literals plus yes/no and on/off
// synonyms, case-insensitively. Empty input reads as true so bare flag
// occurrences enable the toggle.
func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}

	if parsedValue, parseError := strconv.ParseBool(normalizedValue); parseError == nil {
		return parsedValue, nil
	}

	switch normalizedValue {
	case toggleYesValueConstant, toggleOnValueConstant, toggleShortYesValueConstant:
		return true, nil
	case toggleNoValueConstant, toggleOffValueConstant, toggleShortNoValueConstant:
		return false, nil
	}

	return false, fmt.Errorf(toggleParseErrorTemplateConstant, rawValue)
}

type flagToken struct {
	name        string
	isShorthand bool
	hasValue    bool
}

// parseFlagToken splits a command-line argument into its flag name, reporting
// whether the argument is a shorthand and whether it carries an inline value.
func parseFlagToken(argument string) (flagToken, bool) {
	if !strings.HasPrefix(argument, shortFlagPrefixConstant) {
		return flagToken{}, false
	}

	token := flagToken{}
	flagBody := strings.TrimPrefix(argument, longFlagPrefixConstant)
	if flagBody == argument {
		flagBody = strings.TrimPrefix(argument, shortFlagPrefixConstant)
		token.isShorthand = true
	}

	if equalsIndex := strings.Index(flagBody, flagAssignmentSeparatorConstant); equalsIndex >= 0 {
		token.hasValue = true
		flagBody = flagBody[:equalsIndex]
	}

	token.name = flagBody
	if len(token.name) == 0 {
		return flagToken{}, false
	}
	if token.isShorthand && len(token.name) != 1 {
		return flagToken{}, false
	}

	return token, true
}

type toggleFlagRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggleFlags = &toggleFlagRegistry{
	names:      map[string]struct{}{},
	shorthands: map[string]struct{}{},
}

func (registry *toggleFlagRegistry) register(flagName string, flagShorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	registry.names[flagName] = struct{}{}
	if len(flagShorthand) > 0 {
		registry.shorthands[flagShorthand] = struct{}{}
	}
}

func (registry *toggleFlagRegistry) contains(token flagToken) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	if token.isShorthand {
		_, shorthandRegistered := registry.shorthands[token.name]
		return shorthandRegistered
	}

	_, nameRegistered := registry.names[token.name]
	return nameRegistered
}
