package report

import (
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

const TemplatePath = "./templates/simulation_report_email.html"

func LoadTemplate(path string) (*template.Template, error) {
	return template.ParseFiles(path)
}

// BuildMail 根据报告消息构建邮件，收件人为空时返回错误
func BuildMail(from string, recipients []string, tmpl *template.Template, msg domain.ReportMessage) (*mail.Msg, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("没有配置报告收件人")
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(recipients...); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, msg); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	m.Subject(fmt.Sprintf("GreenCart 模拟报告 #%d - 效率 %d%%", msg.RunID, msg.EfficiencyScore))

	return m, nil
}
