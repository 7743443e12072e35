package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/report"
	"github.com/wneessen/go-mail"
)

func TestBuildMail(t *testing.T) {
	tmpl, err := report.LoadTemplate("../../templates/simulation_report_email.html")
	require.NoError(t, err)

	m, err := report.BuildMail("noreply@greencart.example", []string{"ops@greencart.example", "boss@greencart.example"}, tmpl, sampleMessage())
	require.NoError(t, err)

	assert.Equal(t, []string{"GreenCart 模拟报告 #5 - 效率 75%"}, m.GetGenHeader(mail.HeaderSubject))

	buf := &bytes.Buffer{}
	_, err = m.WriteTo(buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ops@greencart.example")
	assert.Contains(t, buf.String(), "boss@greencart.example")
	assert.Contains(t, buf.String(), "text/html")
}

func TestBuildMail_NoRecipients(t *testing.T) {
	tmpl, err := report.LoadTemplate("../../templates/simulation_report_email.html")
	require.NoError(t, err)

	_, err = report.BuildMail("noreply@greencart.example", nil, tmpl, sampleMessage())
	assert.Error(t, err)
}

func TestBuildMail_BadSender(t *testing.T) {
	tmpl, err := report.LoadTemplate("../../templates/simulation_report_email.html")
	require.NoError(t, err)

	_, err = report.BuildMail("not an address", []string{"ops@greencart.example"}, tmpl, sampleMessage())
	assert.Error(t, err)
}
