package generativeAI

import "google.golang.org/genai"

// Apology is returned when the model answers with no usable text.
const Apology = "ขออภัย ฉันไม่สามารถให้ข้อมูลได้"

const persona = `
คุณคือ Tripster เป็นผู้ช่วยด้านการท่องเที่ยวภาคเหนือของประเทศไทย.
ตอบให้สั้น เข้าใจง่าย ใช้ภาษาสุภาพ เหมาะกับทุกเพศทุกวัย และตอบตามข้อเท็จจริง.

คำถามของผู้ใช้: `

// BuildContents wraps the user's message with the assistant persona.
func BuildContents(userMessage string) []*genai.Content {
	return []*genai.Content{{
		Role:  string(genai.RoleUser),
		Parts: []*genai.Part{{Text: persona + userMessage}},
	}}
}

// ExtractText returns the first candidate's first text part, or Apology.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return Apology
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return Apology
	}
	if text := c.Content.Parts[0].Text; text != "" {
		return text
	}
	return Apology
}
