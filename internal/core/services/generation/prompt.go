package generation

import (
	"fmt"
	"strings"
)

const systemPrompt = "你是一位專業的程式教學助教，擅長生成高品質程式碼。"

const userPromptFormat = `你是一位資工系程式助教。

⚠️ 請務必輸出「完整 JSON」，格式如下：

{
  "code": "<整份補齊後的程式碼>",
  "complexity": {
    "time": "<時間複雜度 Big-O>",
    "space": "<空間複雜度 Big-O>"
  },
  "explanation": "<簡要解釋（不超過 5 句）>"
}

不要使用 ` + "```json、```" + ` 或任何 markdown 標記。

以下為模板，必須保留結構：
%s

使用者需求：
%s

語言：%s
`

func buildPrompt(template, description, language string) string {
	return fmt.Sprintf(userPromptFormat, template, description, language)
}

// stripFences removes markdown code fence markers wherever they appear
func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}
