package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"resume-extract/internal/config"
	"resume-extract/internal/logging"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractResume parses normalized resume text into structured resume data
// using Claude. The model is chosen by the caller based on complexity.
func (cp *ClaudeProvider) ExtractResume(ctx context.Context, text, model string) (*models.ResumeData, error) {
	startTime := time.Now()

	cp.logger.Info("Starting resume extraction with Claude", map[string]interface{}{
		"text_length": len(text),
		"model":       model,
		"provider":    "claude",
	})

	// Truncate to fit token limits. Rough estimation: 3 chars per token.
	maxContentLength := cp.config.LLM.MaxTokens * 3
	if len(text) > maxContentLength {
		text = text[:maxContentLength] + "..."
		cp.logger.Debug("Resume text truncated to fit token limits", map[string]interface{}{
			"max_length": maxContentLength,
		})
	}

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: resumeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: buildResumePrompt(text)},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return nil, utils.NewAIProviderError(err.Error())
	}

	resume, err := cp.parseClaudeResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Resume extraction completed successfully", map[string]interface{}{
		"full_name":       resume.PersonalInfo.FullName,
		"sections":        len(resume.Sections),
		"processing_time": time.Since(startTime).String(),
		"provider":        "claude",
	})

	return resume, nil
}

const resumeSystemPrompt = `You are an expert resume parser. Your task is to extract structured information from resume text and return it in a specific JSON format.

IMPORTANT INSTRUCTIONS:
1. Extract ALL information accurately from the provided resume text
2. If information is missing or unclear, use null or empty string as appropriate
3. For dates, use format like "May 2024" or "Present" for current positions
4. Group skills by categories when possible (e.g., "Programming Languages", "Frontend Technologies")
5. Infer targetJobTitle from the person's current job title or most recent experience
6. Every description field is an array of discrete bullet strings, never a single paragraph
7. Phone numbers should contain only digits
8. Return ONLY valid JSON - no additional text or explanations`

// resumeSchema describes the exact output shape embedded in the prompt.
const resumeSchema = `{
  "id": "null or string",
  "targetJobTitle": "string - inferred from job title or experience",
  "targetJobDescription": "string - empty by default",
  "personalInfo": {
    "fullName": "string",
    "jobTitle": "string - current or desired job title",
    "email": "string",
    "phone": "string - digits only",
    "location": "string",
    "summary": "string - professional summary/objective",
    "profilePicture": null
  },
  "sections": [
    {
      "id": "experience-1",
      "type": "experience",
      "title": "Work Experience",
      "order": 0,
      "hidden": false,
      "items": [
        {
          "jobTitle": "string",
          "company": "string",
          "location": "string",
          "startDate": "string or null (format: 'May 2024')",
          "endDate": "string or null (format: 'May 2026' or 'Present')",
          "currentPosition": "boolean",
          "description": ["array of bullet strings - responsibilities and achievements"]
        }
      ],
      "groups": [],
      "state": {"categoryOrder": []}
    },
    {
      "id": "projects-1",
      "type": "projects",
      "title": "Projects",
      "order": 1,
      "hidden": false,
      "items": [
        {
          "name": "string - project name",
          "description": ["array of bullet strings"],
          "technologies": ["array of technology strings"],
          "startDate": "string or null",
          "endDate": "string or null",
          "ongoing": "boolean",
          "url": "string - project URL if available"
        }
      ],
      "groups": [],
      "state": {"categoryOrder": []}
    },
    {
      "id": "education-1",
      "type": "education",
      "title": "Education",
      "order": 2,
      "hidden": false,
      "items": [
        {
          "degree": "string - degree name",
          "institution": "string - school/university name",
          "location": "string",
          "startDate": "string or null",
          "endDate": "string or null",
          "current": "boolean",
          "gpa": "string - GPA if available",
          "description": ["array of bullet strings - additional details"]
        }
      ],
      "groups": [],
      "state": {"categoryOrder": []}
    },
    {
      "id": "skills-1",
      "type": "skills",
      "title": "Skills",
      "order": 3,
      "format": "grouped",
      "hidden": false,
      "items": [
        {
          "name": "string - skill name",
          "category": "string - skill category",
          "level": "string - proficiency level if mentioned"
        }
      ],
      "groups": [
        {
          "name": "string - category name",
          "skills": ["array of skill names in this category"]
        }
      ],
      "state": {"categoryOrder": [], "viewMode": "categorized"}
    }
  ]
}`

// buildResumePrompt creates the user prompt carrying the schema and the text
func buildResumePrompt(text string) string {
	return fmt.Sprintf(`Please parse this resume text and extract structured information.

TARGET JSON SCHEMA:
%s

RESUME TEXT:
%s

Return the parsed data as JSON in exactly the structure specified above.`, resumeSchema, text)
}

// parseClaudeResponse parses the Claude API response into resume data
func (cp *ClaudeProvider) parseClaudeResponse(response *anthropic.Message) (*models.ResumeData, error) {
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	// Strip markdown code fences if present
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	var resume models.ResumeData
	if err := json.Unmarshal([]byte(responseText), &resume); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response from Claude: %w", err)
	}

	resume.ApplyDefaults()
	return &resume, nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.ModelSimple),
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
