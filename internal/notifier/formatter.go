package notifier

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"TwseScreener/internal/model"
)

const (
	colorReport     = 0x4CA1AF
	colorNonTrading = 0x64748B
	colorError      = 0xFF0000
)

// topPicks merges the three linear strategy lists, deduplicates by symbol
// keeping the highest score, and returns the top n.
func topPicks(result *model.AnalysisResult, n int) []model.ScoredStock {
	best := make(map[string]model.ScoredStock)
	var order []string
	for _, list := range [][]model.ScoredStock{result.Technical, result.Fundamental, result.Hybrid} {
		for _, s := range list {
			cur, seen := best[s.Symbol]
			if !seen {
				order = append(order, s.Symbol)
			}
			if !seen || s.StrategyScore > cur.StrategyScore {
				best[s.Symbol] = s
			}
		}
	}
	picks := make([]model.ScoredStock, 0, len(order))
	for _, sym := range order {
		picks = append(picks, best[sym])
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].StrategyScore > picks[j].StrategyScore
	})
	if len(picks) > n {
		picks = picks[:n]
	}
	return picks
}

// BuildReportEmbed formats the daily report embed.
func BuildReportEmbed(result *model.AnalysisResult, reportURL string) *Embed {
	var top strings.Builder
	for i, pick := range topPicks(result, 3) {
		sign := "+"
		if pick.ChangePercent < 0 {
			sign = ""
		}
		top.WriteString(fmt.Sprintf("%d. **%s** %s\n   價格: %.2f (%s%.2f%%) | 評分: %.1f\n",
			i+1, pick.Symbol, pick.Name, pick.Price, sign, pick.ChangePercent, pick.StrategyScore))
	}
	topValue := top.String()
	if topValue == "" {
		topValue = "暫無推薦"
	}

	stats := fmt.Sprintf("分析股票: %d\n技術面: %d | 基本面: %d | 混合: %d\n主題: 高股息(%d) 成長(%d) 價值(%d)",
		result.TotalAnalyzed, len(result.Technical), len(result.Fundamental), len(result.Hybrid),
		len(result.Thematic.HighDividend), len(result.Thematic.Growth), len(result.Thematic.Value))

	return &Embed{
		Title:       fmt.Sprintf("📊 每日四策略報告 - %s", result.Date),
		Description: "今日最值得關注的投資標的已更新！",
		Color:       colorReport,
		URL:         reportURL,
		Fields: []EmbedField{
			{Name: "🏆 Top 3 推薦", Value: topValue},
			{Name: "📊 分析統計", Value: stats, Inline: true},
		},
		Footer:    &EmbedFooter{Text: "四策略投資分析系統 • 自動生成"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// SendDailyReport pushes the daily report notification.
func (d *DiscordNotifier) SendDailyReport(ctx context.Context, result *model.AnalysisResult, reportURL string) error {
	embed := BuildReportEmbed(result, reportURL)
	message := "⏰ **每日投資報告**\n今日推薦已更新！"
	if reportURL != "" {
		message += "點擊查看完整報告：" + reportURL
	}
	return d.SendWithRetry(ctx, message, embed, 3)
}

// SendNonTradingDayNotice announces that no report will be produced today.
func (d *DiscordNotifier) SendNonTradingDayNotice(ctx context.Context, dateStr, reason string) error {
	embed := &Embed{
		Title:       "📅 非交易日通知",
		Description: fmt.Sprintf("%s 為台灣股市非交易日（%s），今日無投資分析報告。", dateStr, reason),
		Color:       colorNonTrading,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &EmbedFooter{Text: "四策略投資分析系統"},
	}
	message := fmt.Sprintf("📅 **非交易日通知**\n今日 (%s) 為台灣股市非交易日。", dateStr)
	return d.SendWithRetry(ctx, message, embed, 3)
}

// SendErrorNotice reports a failed run.
func (d *DiscordNotifier) SendErrorNotice(ctx context.Context, errMsg string) error {
	embed := &Embed{
		Title:       "❌ 投資分析系統錯誤",
		Description: errMsg,
		Color:       colorError,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	return d.SendWithRetry(ctx, "⚠️ 投資分析系統執行失敗，請檢查系統狀態！", embed, 3)
}
