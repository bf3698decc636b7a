package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Netcracker/qubership-site-refinement-service/utils"
	"github.com/Netcracker/qubership-site-refinement-service/view"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/prompts"
)

type LLMClient interface {
	ProposePatches(ctx context.Context, artifacts []view.CodeArtifact, report view.ValidationReport) (*view.PatchSet, error)
	AuditArtifacts(ctx context.Context, artifacts []view.CodeArtifact) ([]view.IssueRecord, error)
	UpdateRefinePrompt(prompt string)
	UpdateModel(model string) error
}

func NewOpenaiClient(apiKey string, model string, proxy string) (LLMClient, error) {

	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		return nil, errors.New("openai: api key is required")
	}

	if proxy != "" {
		// TODO: validate URL
		opts = append(opts, option.WithBaseURL(proxy))
	}

	var openAIModel openai.ChatModel
	if model != "" {
		openAIModel = model
	} else {
		openAIModel = openai.ChatModelGPT5
	}

	tr := http.Transport{
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: true},
		TLSHandshakeTimeout:   time.Second * 1800,
		IdleConnTimeout:       time.Second * 1800,
		ResponseHeaderTimeout: time.Second * 1800,
		ExpectContinueTimeout: time.Second * 1800,
	}
	cl := http.Client{Transport: &tr, Timeout: time.Second * 1800}

	opts = append(opts, option.WithHTTPClient(&cl))

	return &openaiClientImpl{
		client:       openai.NewClient(opts...),
		model:        openAIModel,
		semaphore:    utils.NewSemaphore(1),
		refinePrompt: defaultRefinePrompt,
	}, nil
}

type openaiClientImpl struct {
	client    openai.Client
	model     openai.ChatModel
	semaphore *utils.Semaphore

	refinePrompt string
}

var PatchSetOutputResponseSchema = GenerateSchema[view.PatchSetOutput]()
var AuditIssuesOutputResponseSchema = GenerateSchema[view.AuditIssuesOutput]()

const defaultRefinePrompt = `You are refining the code of a generated website (HTML, CSS, JavaScript).
You receive the current code artifacts and a validation report listing defects found by automated checks.
Fix the reported defects while keeping the cross-file coupling intact: selectors referenced from HTML must
stay defined in CSS, element ids used by scripts must stay present in HTML, and linked file names must not change.
For every file you change, return the complete new file content. Never return partial diffs.
Do not add files that are not needed to fix a reported defect. Avoid any other output.`

var refineUserMessageTemplate = prompts.NewPromptTemplate(
	`validation report:
{{.report}}

current artifacts:
{{.artifacts}}`,
	[]string{"report", "artifacts"},
)

func (l *openaiClientImpl) ProposePatches(ctx context.Context, artifacts []view.CodeArtifact, report view.ValidationReport) (*view.PatchSet, error) {
	l.semaphore.Acquire()
	defer l.semaphore.Release()

	start := time.Now()

	reportBytes, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return nil, err
	}
	artifactsBytes, err := json.MarshalIndent(artifacts, "", "    ")
	if err != nil {
		return nil, err
	}

	userMessage, err := refineUserMessageTemplate.Format(map[string]any{
		"report":    string(reportBytes),
		"artifacts": string(artifactsBytes),
	})
	if err != nil {
		return nil, err
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(l.refinePrompt),
		openai.UserMessage(userMessage),
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   "patch_set_result",
		Schema: PatchSetOutputResponseSchema,
		Strict: openai.Bool(true),
	}

	log.Infof("run propose patches with openai client")

	chat, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: l.model,
	})
	log.Infof("finished propose patches with openai client, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return nil, err
	}

	var result view.PatchSetOutput
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result)
	if err != nil {
		return nil, err
	}

	patchSet := view.PatchSet{Explanation: result.Explanation}
	for _, patch := range result.Patches {
		patchSet.Patches = append(patchSet.Patches, view.FilePatch{
			FilePath:   patch.FilePath,
			NewContent: patch.FixedCode,
		})
	}
	return &patchSet, nil
}

const defaultAuditPrompt = `You need to review the code of a generated website (HTML, CSS, JavaScript) for defects:
broken references between files, invalid markup, missing accessibility attributes, unresponsive layout hints.
Severity "error" is for defects that break the page or make it unusable, "warning" for everything else.
List identified issues in json format. Avoid any other output.`

func (l *openaiClientImpl) AuditArtifacts(ctx context.Context, artifacts []view.CodeArtifact) ([]view.IssueRecord, error) {
	l.semaphore.Acquire()
	defer l.semaphore.Release()

	start := time.Now()

	artifactsBytes, err := json.MarshalIndent(artifacts, "", "    ")
	if err != nil {
		return nil, err
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(defaultAuditPrompt),
		openai.UserMessage("artifacts: \n" + string(artifactsBytes)),
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   "audit_issues_result",
		Schema: AuditIssuesOutputResponseSchema,
		Strict: openai.Bool(true),
	}

	log.Infof("run audit artifacts with openai client")

	chat, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: l.model,
	})
	log.Infof("finished audit artifacts with openai client, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return nil, err
	}

	var result view.AuditIssuesOutput
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result)
	if err != nil {
		return nil, err
	}

	return result.Issues, nil
}

func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

func (l *openaiClientImpl) UpdateRefinePrompt(prompt string) {
	l.refinePrompt = prompt
}

func (l *openaiClientImpl) UpdateModel(model string) error {
	if model == "" {
		return fmt.Errorf("model must not be empty")
	}
	l.model = model
	return nil
}
