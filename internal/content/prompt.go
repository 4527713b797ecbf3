package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/vault"
)

const planSystemPrompt = `你是 Lumi，一名初中生的 AI 学习规划师。
根据学生的错题和今日数据，安排今天的学习任务。
总时长控制在 90 分钟以内，每个任务都要说明安排理由。`

const variantSystemPrompt = `你是一名初中老师，负责出变式训练题。
新题必须考查与原题相同的知识点，但换用不同的数字或情境。
给出四个选项，其中只有一个正确，干扰项要针对学生曾犯的错误。`

func buildPlanUserMessage(stats plan.UserStats, pending []vault.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "今日经验：%d/%d，已学习 %d 分钟，连续打卡 %d 天。\n",
		stats.XPToday, stats.XPTarget, stats.StudyMinutesToday, stats.StreakDays)
	if len(pending) == 0 {
		b.WriteString("错题本已清空。\n")
		return b.String()
	}
	b.WriteString("待复习错题：\n")
	for _, it := range pending {
		fmt.Fprintf(&b, "- [%s/%s] %s（%s）\n", it.Subject.Label(), it.Topic, it.Snippet, it.ErrorType.Label())
	}
	return b.String()
}

func buildVariantUserMessage(it vault.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "原题：%s\n", it.Question)
	fmt.Fprintf(&b, "正确答案：%s\n", it.CorrectAnswer)
	if it.WrongAnswer != "" {
		fmt.Fprintf(&b, "学生的错误答案：%s\n", it.WrongAnswer)
	}
	fmt.Fprintf(&b, "错误类型：%s\n", it.ErrorType.Label())
	fmt.Fprintf(&b, "解析：%s\n", it.Analysis)
	return b.String()
}
