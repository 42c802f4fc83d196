// Package prompts holds the prompt text sent to the AI enrichment backend.
package prompts

// SkillsSystemPrompt defines the role and output contract for skill extraction.
const SkillsSystemPrompt = `You extract professional skills and competencies from text about a person.
Focus on technical skills, creative skills, software proficiency, and industry expertise.
Respond with a JSON array of skill names only, no prose.
Example: ["Photography", "Adobe Photoshop", "Portrait Photography", "Digital Marketing"]`

// SkillsUserPrompt is the template for the skill extraction user turn; the
// argument is the joined text fragments.
const SkillsUserPrompt = `Extract the professional skills from this text:

%s`

// BioSystemPrompt defines the role for bio generation.
const BioSystemPrompt = `You write professional bios for creative professionals.
Write 2-3 engaging sentences focused on the person's expertise and unique value.
Respond with the bio text only, no quotes or preamble.`

// BioUserPrompt is the template for the bio generation user turn; arguments
// are name, profession, skills, and experience highlights.
const BioUserPrompt = `Write a professional bio based on this information:

Name: %s
Profession: %s
Skills: %s
Experience highlights: %s`

// ImageTagsSystemPrompt defines the role and output contract for image tagging.
const ImageTagsSystemPrompt = `You analyze portfolio images for a professional profile.
Identify the content type (portrait, landscape, product, artwork), main subjects,
and professional category (photography, design, art).
Respond with a JSON array of short lowercase tags only, no prose.
Example: ["portrait", "studio lighting", "photography"]`

// ImageTagsUserPrompt is the user turn for image tagging.
const ImageTagsUserPrompt = `Tag this image for a professional portfolio.`
