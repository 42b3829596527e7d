package generation

import (
	"fmt"
	"strings"

	"github.com/careerforge/portfolio-api/internal/domain/generation"
)

const portfolioWriterSystemPrompt = "You are an expert portfolio and resume writer. " +
	"Generate professional, engaging content that highlights achievements and skills. " +
	"Always respond with valid JSON format. Be specific and use realistic details."

const enhancerSystemPrompt = "You are an expert content enhancer. " +
	"Improve the given content while maintaining its core message and authenticity."

func buildFullPortfolioPrompt(input generation.InputData) string {
	skills := "Not specified"
	if len(input.Skills) > 0 {
		skills = strings.Join(input.Skills, ", ")
	}
	resume := "Not provided"
	if input.ResumeText != "" {
		resume = "Provided - use relevant information:\n" + input.ResumeText
	}

	return fmt.Sprintf(`Generate a complete portfolio content in JSON format for a %s in %s with %s years of experience.

Skills: %s
Resume content: %s
Tone: %s

Return JSON with this exact structure:
{
  "hero": {
    "title": "Full Name",
    "subtitle": "Professional Title",
    "description": "Compelling 2-3 sentence elevator pitch highlighting expertise and value proposition"
  },
  "about": {
    "content": "Detailed 2-3 paragraph professional summary highlighting expertise, achievements, and career goals. Make it personal yet professional."
  },
  "experience": [
    {
      "id": "1",
      "title": "Job Title",
      "company": "Company Name",
      "duration": "Start Date - End Date",
      "description": "Detailed description of role, responsibilities, and key achievements with specific metrics where possible"
    }
  ],
  "projects": [
    {
      "id": "1",
      "title": "Project Name",
      "description": "Detailed project description highlighting technologies used, challenges solved, and impact",
      "technologies": ["Tech1", "Tech2", "Tech3"],
      "url": "https://example.com"
    }
  ],
  "skills": ["Skill1", "Skill2", "Skill3", "Skill4", "Skill5"],
  "education": [
    {
      "id": "1",
      "degree": "Degree Type and Field",
      "school": "Institution Name",
      "year": "Graduation Year"
    }
  ],
  "contact": {
    "email": "email@example.com",
    "phone": "+1-XXX-XXX-XXXX",
    "location": "City, State",
    "linkedin": "https://linkedin.com/in/username",
    "github": "https://github.com/username"
  }
}

Make the content specific, professional, and achievement-focused. Include realistic but impressive details that align with the provided skills and experience level.`,
		input.JobTitle, orDefault(input.Industry, "Technology"), orDefault(input.Experience, "3"),
		skills, resume, input.Tone)
}

// buildFallbackSectionPrompt covers section types with no stored template.
func buildFallbackSectionPrompt(input generation.InputData) string {
	return fmt.Sprintf("Generate professional %s content for a %s in %s. Make it %s and engaging.",
		input.SectionType, input.JobTitle, orDefault(input.Industry, "Technology"), input.Tone)
}

func sectionJSONInstruction(sectionType generation.SectionType) string {
	return fmt.Sprintf("\n\nReturn the result as a JSON object with a single top-level %q key, shaped for the %s section.",
		sectionType, sectionType)
}

func buildEnhancementPrompt(input generation.InputData) string {
	return fmt.Sprintf(`Enhance and improve the following content to make it more engaging, professional, and impactful. Maintain the same structure but improve clarity, impact, and %s tone:

%s

Return the enhanced content in the same JSON format.`, input.Tone, string(input.ExistingContent))
}

// buildTextEnhancementPrompt serves the free-text enhancement endpoint; the
// result is prose, not JSON.
func buildTextEnhancementPrompt(content, enhancementType string) string {
	switch enhancementType {
	case "improve_clarity":
		return fmt.Sprintf("Improve the clarity and readability of this content while maintaining its core message:\n\n%q\n\nMake it more clear, concise, and impactful. Return only the improved version.", content)
	case "add_metrics":
		return fmt.Sprintf("Enhance this content by suggesting specific metrics and quantifiable achievements that could be added:\n\n%q\n\nReturn the enhanced version with realistic metrics and numbers that make the content more compelling.", content)
	case "professional_tone":
		return fmt.Sprintf("Rewrite this content in a more professional tone while keeping the same information:\n\n%q\n\nReturn only the professionally rewritten version.", content)
	case "action_oriented":
		return fmt.Sprintf("Rewrite this content to be more action-oriented and achievement-focused:\n\n%q\n\nUse strong action verbs and focus on accomplishments. Return only the improved version.", content)
	default:
		return fmt.Sprintf("Improve and enhance this content:\n\n%q\n\nMake it more engaging, professional, and impactful. Return only the enhanced version.", content)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
