package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"TwseScreener/internal/model"
)

// WriteHTML renders the result as a standalone HTML page and returns its path.
func WriteHTML(dir string, result *model.AnalysisResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create web dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("four_strategy_report_%s.html", result.Date))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, result); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return path, nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="zh-TW">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>四策略投資分析 - {{.Date}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Microsoft JhengHei', sans-serif;
  background: linear-gradient(135deg, #1a2980 0%, #26d0ce 100%);
  color: #333; line-height: 1.6; padding: 20px; min-height: 100vh;
}
.container {
  max-width: 1400px; margin: 0 auto; background: white;
  border-radius: 20px; box-shadow: 0 20px 60px rgba(0,0,0,0.3); overflow: hidden;
}
header {
  background: linear-gradient(135deg, #2c3e50 0%, #4ca1af 100%);
  color: white; padding: 40px; text-align: center;
}
h1 { font-size: 2.4rem; margin-bottom: 10px; }
.subtitle { opacity: 0.9; }
.summary { display: flex; flex-wrap: wrap; gap: 16px; padding: 24px 40px; }
.card {
  flex: 1; min-width: 160px; background: #f8fafc; border-radius: 12px;
  padding: 16px; text-align: center; border: 1px solid #e2e8f0;
}
.card .num { font-size: 1.8rem; font-weight: 700; color: #2c3e50; }
section { padding: 8px 40px 24px; }
h2 { color: #2c3e50; margin: 16px 0 8px; border-left: 5px solid #4ca1af; padding-left: 10px; }
h3 { color: #4a5568; margin: 12px 0 6px; }
table { width: 100%; border-collapse: collapse; font-size: 0.95rem; }
th, td { padding: 8px 10px; text-align: right; border-bottom: 1px solid #e2e8f0; }
th { background: #f1f5f9; color: #475569; }
th:nth-child(-n+3), td:nth-child(-n+3) { text-align: left; }
.up { color: #dc2626; }
.down { color: #16a34a; }
.empty { color: #94a3b8; padding: 12px 0; }
footer { padding: 20px 40px; text-align: center; color: #64748b; font-size: 0.85rem; }
</style>
</head>
<body>
<div class="container">
<header>
  <h1>📊 四策略投資分析</h1>
  <div class="subtitle">{{.Date}} · 技術面 | 基本面 | 混合策略 | 特定主題</div>
</header>
<div class="summary">
  <div class="card"><div class="num">{{.TotalAnalyzed}}</div>分析股票</div>
  <div class="card"><div class="num">{{len .Technical}}</div>技術面推薦</div>
  <div class="card"><div class="num">{{len .Fundamental}}</div>基本面推薦</div>
  <div class="card"><div class="num">{{len .Hybrid}}</div>混合策略推薦</div>
</div>
<section>
  <h2>📈 技術面主導策略</h2>
  {{template "table" .Technical}}
  <h2>🏦 基本面主導策略</h2>
  {{template "table" .Fundamental}}
  <h2>⚖️ 混合策略</h2>
  {{template "table" .Hybrid}}
  <h2>🎯 特定主題策略</h2>
  <h3>💰 高股息</h3>
  {{template "table" .Thematic.HighDividend}}
  <h3>🚀 成長股</h3>
  {{template "table" .Thematic.Growth}}
  <h3>💎 價值股</h3>
  {{template "table" .Thematic.Value}}
</section>
<footer>資料來源：{{.DataSource}} · 產生時間 {{.ReportTime}} · 本報告僅供參考，不構成投資建議</footer>
</div>
</body>
</html>
{{define "table"}}
{{if .}}
<table>
<tr><th>#</th><th>代號</th><th>名稱</th><th>價格</th><th>漲跌幅</th><th>RSI</th><th>本益比</th><th>殖利率</th><th>評分</th></tr>
{{range $i, $s := .}}
<tr>
  <td>{{add1 $i}}</td>
  <td>{{$s.Symbol}}</td>
  <td>{{$s.Name}}</td>
  <td>{{printf "%.2f" $s.Price}}</td>
  <td class="{{if ge $s.ChangePercent 0.0}}up{{else}}down{{end}}">{{printf "%+.2f%%" $s.ChangePercent}}</td>
  <td>{{printf "%.1f" $s.RSI}}</td>
  <td>{{printf "%.1f" $s.PERatio}}</td>
  <td>{{printf "%.2f%%" $s.DividendYield}}</td>
  <td><b>{{printf "%.2f" $s.StrategyScore}}</b></td>
</tr>
{{end}}
</table>
{{else}}
<div class="empty">今日無符合條件的股票</div>
{{end}}
{{end}}`))
