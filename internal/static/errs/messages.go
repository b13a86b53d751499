package errs

import "fmt"

// User-facing messages, kept in the tutor's display language.
const (
	MsgDescriptionRequired = "請提供需求描述"
	MsgNoTestInput         = "未提供測試輸入"
	MsgLintPlaceholder     = "✔ 語法檢查功能保留（可按需求擴充）"

	MsgLLMCodeNotConfigured        = "# Error: OpenAI API 未設定"
	MsgLLMExplanationNotConfigured = "⚠️ OpenAI API 未正確設定，請檢查環境變數。"
	MsgJSONParseFailed             = "⚠️ JSON 解析失敗，已顯示原始輸出。"
	MsgSimulationNotConfigured     = "⚠️ OpenAI API 未設定，無法模擬執行"

	MsgJDoodleNoCredentials = "⚠️ JDoodle API 憑證未設定"
	MsgJDoodleQuotaReached  = "⚠️ 已達今日免費上限"
	MsgJDoodleTimeout       = "⚠️ JDoodle API 執行超時"
	MsgJDoodleBadResponse   = "⚠️ JDoodle API 回傳錯誤"
)

func MsgDescriptionTooLong(max int) string {
	return fmt.Sprintf("需求描述過長（最多 %d 字元）", max)
}

func MsgGenerationCode(err error) string {
	return fmt.Sprintf("# Error: %s", err)
}

func MsgGenerationFailed(err error) string {
	return fmt.Sprintf("⚠️ 生成失敗: %s", err)
}

func MsgSimulationFailed(err error) string {
	return fmt.Sprintf("⚠️ 模擬執行失敗: %s", err)
}

func MsgJDoodleUnreachable(err error) string {
	return fmt.Sprintf("⚠️ 無法連線到 JDoodle：%s", err)
}

func MsgProcessingFailed(v interface{}) string {
	return fmt.Sprintf("處理失敗：%v", v)
}

func MsgComplexity(timeC, spaceC string) string {
	return fmt.Sprintf("時間複雜度：%s\n空間複雜度：%s", timeC, spaceC)
}
