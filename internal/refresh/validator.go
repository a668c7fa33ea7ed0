package refresh

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	manifestSchemaResourceNameConstant              = "manifest_schema.json"
	manifestSchemaDecodeErrorTemplateConstant       = "failed to decode manifest schema: %w"
	manifestSchemaResourceErrorTemplateConstant     = "failed to register manifest schema: %w"
	manifestSchemaCompileErrorTemplateConstant      = "failed to compile manifest schema: %w"
	manifestDocumentParseErrorTemplateConstant      = "failed to parse manifest document: %w"
	manifestDocumentEncodeErrorTemplateConstant     = "failed to encode manifest document: %w"
	manifestDocumentPrepareErrorTemplateConstant    = "failed to prepare manifest document: %w"
	manifestDocumentValidationErrorTemplateConstant = "unexpected manifest validation failure: %w"
	manifestSchemaViolationTemplateConstant         = "manifest %s violates schema: %s"
	manifestIssueTemplateConstant                   = "%s: %s"
	manifestIssueSeparatorConstant                  = "; "
	manifestRootLocationConstant                    = "/"
	manifestInstanceLocationSeparatorConstant       = "/"
	oneOfKeywordConstant                            = "oneOf"
	allOfKeywordConstant                            = "allOf"
	referenceKeywordConstant                        = "$ref"
)

//go:embed manifest_schema.json
var manifestSchemaBytes []byte

var (
	compiledManifestSchema     *jsonschema.Schema
	manifestSchemaCompileOnce  sync.Once
	manifestSchemaCompileError error
	englishPrinter             = message.NewPrinter(language.English)
)

// ManifestIssue locates a single schema violation inside a manifest document.
type ManifestIssue struct {
	Location string
	Message  string
}

// ManifestValidationError reports schema violations found while loading a manifest.
type ManifestValidationError struct {
	Path   string
	Issues []ManifestIssue
}

// Error lists the schema violations with their instance locations.
func (validationError ManifestValidationError) Error() string {
	issueDescriptions := make([]string, 0, len(validationError.Issues))
	for _, issue := range validationError.Issues {
		issueDescriptions = append(issueDescriptions, fmt.Sprintf(manifestIssueTemplateConstant, issue.Location, issue.Message))
	}
	return fmt.Sprintf(manifestSchemaViolationTemplateConstant, validationError.Path, strings.Join(issueDescriptions, manifestIssueSeparatorConstant))
}

func manifestSchema() (*jsonschema.Schema, error) {
	manifestSchemaCompileOnce.Do(func() {
		schemaDocument, decodeError := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchemaBytes))
		if decodeError != nil {
			manifestSchemaCompileError = fmt.Errorf(manifestSchemaDecodeErrorTemplateConstant, decodeError)
			return
		}

		schemaCompiler := jsonschema.NewCompiler()
		if resourceError := schemaCompiler.AddResource(manifestSchemaResourceNameConstant, schemaDocument); resourceError != nil {
			manifestSchemaCompileError = fmt.Errorf(manifestSchemaResourceErrorTemplateConstant, resourceError)
			return
		}

		compiledSchema, compileError := schemaCompiler.Compile(manifestSchemaResourceNameConstant)
		if compileError != nil {
			manifestSchemaCompileError = fmt.Errorf(manifestSchemaCompileErrorTemplateConstant, compileError)
			return
		}
		compiledManifestSchema = compiledSchema
	})
	return compiledManifestSchema, manifestSchemaCompileError
}

func validateManifestDocument(manifestPath string, contentBytes []byte) error {
	schema, schemaError := manifestSchema()
	if schemaError != nil {
		return schemaError
	}

	var rawDocument any
	if unmarshalError := yaml.Unmarshal(contentBytes, &rawDocument); unmarshalError != nil {
		return fmt.Errorf(manifestDocumentParseErrorTemplateConstant, unmarshalError)
	}

	encodedDocument, encodeError := json.Marshal(normalizeDocumentValue(rawDocument))
	if encodeError != nil {
		return fmt.Errorf(manifestDocumentEncodeErrorTemplateConstant, encodeError)
	}

	documentInstance, decodeError := jsonschema.UnmarshalJSON(bytes.NewReader(encodedDocument))
	if decodeError != nil {
		return fmt.Errorf(manifestDocumentPrepareErrorTemplateConstant, decodeError)
	}

	validationError := schema.Validate(documentInstance)
	if validationError == nil {
		return nil
	}

	var schemaValidationError *jsonschema.ValidationError
	if !errors.As(validationError, &schemaValidationError) {
		return fmt.Errorf(manifestDocumentValidationErrorTemplateConstant, validationError)
	}
	return ManifestValidationError{Path: manifestPath, Issues: collectManifestIssues(schemaValidationError)}
}

// collectManifestIssues flattens the validation error tree into leaf issues.
// Branch schemas report through their causes, so container keywords are
// skipped in favor of the property-level violations beneath them.
func collectManifestIssues(validationError *jsonschema.ValidationError) []ManifestIssue {
	var issues []ManifestIssue
	appendManifestIssues(validationError, &issues)
	if len(issues) == 0 {
		issues = append(issues, ManifestIssue{Location: manifestRootLocationConstant, Message: validationError.Error()})
	}
	return deduplicateManifestIssues(issues)
}

func appendManifestIssues(validationError *jsonschema.ValidationError, issues *[]ManifestIssue) {
	if len(validationError.Causes) > 0 {
		for _, cause := range validationError.Causes {
			appendManifestIssues(cause, issues)
		}
		return
	}

	if validationError.ErrorKind == nil {
		return
	}
	keywordPath := validationError.ErrorKind.KeywordPath()
	if len(keywordPath) == 0 {
		return
	}
	keyword := keywordPath[len(keywordPath)-1]
	if keyword == oneOfKeywordConstant || keyword == allOfKeywordConstant || keyword == referenceKeywordConstant {
		return
	}

	*issues = append(*issues, ManifestIssue{
		Location: formatInstanceLocation(validationError.InstanceLocation),
		Message:  validationError.ErrorKind.LocalizedString(englishPrinter),
	})
}

func formatInstanceLocation(instanceLocation []string) string {
	if len(instanceLocation) == 0 {
		return manifestRootLocationConstant
	}
	return manifestInstanceLocationSeparatorConstant + strings.Join(instanceLocation, manifestInstanceLocationSeparatorConstant)
}

func deduplicateManifestIssues(issues []ManifestIssue) []ManifestIssue {
	seenIssues := make(map[string]struct{}, len(issues))
	uniqueIssues := make([]ManifestIssue, 0, len(issues))
	for _, issue := range issues {
		issueKey := issue.Location + manifestIssueSeparatorConstant + issue.Message
		if _, seen := seenIssues[issueKey]; seen {
			continue
		}
		seenIssues[issueKey] = struct{}{}
		uniqueIssues = append(uniqueIssues, issue)
	}
	return uniqueIssues
}

func normalizeDocumentValue(value any) any {
	switch typedValue := value.(type) {
	case map[string]any:
		normalizedMap := make(map[string]any, len(typedValue))
		for key, entry := range typedValue {
			normalizedMap[key] = normalizeDocumentValue(entry)
		}
		return normalizedMap
	case []any:
		normalizedSlice := make([]any, len(typedValue))
		for index, entry := range typedValue {
			normalizedSlice[index] = normalizeDocumentValue(entry)
		}
		return normalizedSlice
	default:
		return typedValue
	}
}
