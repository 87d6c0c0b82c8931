package workflow

import (
	"fmt"

	"github.com/flowstudio/flowswarm/brand"
)

const trendResearchPrompt = `As a design trend researcher, analyze the current state of web design.

Focus areas:
1. Visual aesthetics: color trends (perceptual color spaces like OKLCH), typography (variable fonts, bold weights), layout patterns, textures and depth effects.
2. Interaction patterns: micro-interactions with spring physics, scroll effects, hover states, loading states.
3. Technical approaches: modern CSS features (container queries, :has(), cascade layers), performance, accessibility (WCAG 2.2), fluid responsive design.
4. What is outdated and should be avoided.
5. What is current and should be embraced: glassmorphism and depth, kinetic typography, organic shapes, variable fonts, spring-based animations, asymmetric layouts.

Provide a comprehensive analysis with specific recommendations.

Output JSON with keys: "trends" (visual, interaction, technical arrays of {trend, description, implementation, examples}), "deprecated" (string array), "recommendations" ({colors, typography, layout, motion}) and "tooling" ({cssFeatures, libraries, fonts}).`

const brandAnalysisPrompt = `Analyze the brand configuration in the context and provide comprehensive design recommendations.

Consider:
1. Brand voice and how it should translate visually
2. Target audience and their expectations
3. Sector design conventions and opportunities to differentiate
4. Visual attributes and how to achieve them
5. Constraints and what they mean for design decisions

Provide actionable insights for the design team.

Output JSON with keys: "brandName", "sector", "analysis" ({voice, audience, differentiation}), "recommendations" ({colorPalette, typography, layout, motion, effects}), "mustAvoid" (string array) and "opportunities" (string array).`

// tokenGenerationPrompt embeds the brand's visual hints so token choices track
// the configured temperature, sophistication and density.
func tokenGenerationPrompt(cfg brand.Config) string {
	visual, _ := cfg["visual"].(map[string]any)
	field := func(key, fallback string) string {
		if v, ok := visual[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}

	return fmt.Sprintf(`You are an expert design system architect.

Generate comprehensive design tokens for the brand configuration in the context.

Requirements:
1. Color palette: use OKLCH color space with hex equivalents. Generate primary, accent, neutral, success, warning and error palettes, each with shades 50 through 900. Match the brand's color temperature (%s) and sophistication (%s). Ensure WCAG AAA contrast ratios (7:1 for text, 4.5:1 for UI).
2. Typography: select 2-3 font families that match the brand voice, prefer variable fonts, and build a modular type scale (1.25 ratio, 16px base) with line heights and weights.
3. Spacing: 4px base unit with a full scale, matched to the brand density (%s).
4. Motion: duration scale from 75ms to 700ms, cubic-bezier easings and spring physics parameters matched to the brand energy level.
5. Effects: soft realistic shadows, blur values for glassmorphism, border radius and opacity scales.
6. Component-level tokens for buttons, inputs and cards.
7. Accessibility: focus ring tokens, 44px minimum touch targets, reduced motion alternatives.

Output a complete, production-ready design token JSON with keys: "project", "aesthetic", "colors" (including "contrast-validation"), "typography", "spacing", "motion", "effects", "components" and "accessibility".

Make it comprehensive, consistent and aligned with the brand configuration.`,
		field("colorTemperature", "neutral"),
		field("sophistication", "standard"),
		field("density", "medium"))
}

func themeVariationsPrompt(count int) string {
	return fmt.Sprintf(`You are a creative design system architect generating theme variations from the base design tokens in the context.

Generate %d distinct theme variations that explore different design approaches while maintaining brand coherence.

Each theme should have:
1. A unique visual identity: different color combinations, typography styles and spacing approaches.
2. Current design trends: glassmorphism, kinetic typography, micro-interactions, 3D depth.
3. Accessibility: every theme must maintain WCAG AAA standards.
4. A clear use case: professional, playful, elegant, bold or minimal moods.

Vary light/dark modes, typography hierarchies, motion character and effect styles across the set.

Output a JSON array of themes, each with keys: "id", "name", "description", "mood", "colors" (primary, accent, background, surface, text variants), "fonts", "spacing", "motion", "effects" and "features".

Make each theme distinctly different and creatively explore the design space.`, count)
}

const tokenEvaluationPrompt = `Evaluate the design tokens in the context for quality, accessibility and brand alignment.

Evaluation criteria:
1. Accessibility: WCAG AAA contrast ratios, minimum font sizes, 44px touch targets, color blindness considerations.
2. Consistency: palette coherence, type scale harmony, spacing system consistency.
3. Brand alignment: does the aesthetic match the brand voice, attributes and constraints?
4. Technical quality: complete token coverage, naming conventions, valid CSS values.
5. Modern standards: current trends, progressive enhancement, responsive support.

Output JSON with keys: "overallScore" (0.0-1.0), "grade" (A+ through F), "evaluation" (per-criterion {score, issues, recommendations}), "strengths", "weaknesses", "criticalIssues", "improvements" ({category, priority, issue, fix, impact}) and "summary".`

const themeEvaluationPrompt = `Evaluate the theme variations in the context for quality, diversity and brand alignment against the base design tokens.

Evaluation criteria:
1. Diversity: do the themes explore genuinely different design directions?
2. Quality: is each theme well executed?
3. Accessibility: do all themes meet WCAG AAA?
4. Brand alignment: do the themes stay true to the brand?
5. Usability: are the themes practical and functional?

Score each theme individually with strengths and weaknesses, then rank them from best to worst.

Output JSON with keys: "overallScore" (0.0-1.0), "diversityScore", "averageQuality", "themeEvaluations" ({themeId, themeName, score, grade, strengths, weaknesses, accessibility}), "topThemes" (best theme ids in order) and "summary".`
