package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfexpenses/internal/core"
)

func TestPaymentDate(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{`q:\folder 1\Pixum_BEZ2017-01-03.pdf`, "2017-01-03", true},
		{"/invoices/2017/Saal_BEZ2017-08-01.pdf", "2017-08-01", true},
		{"Post_BEZ2017-02-28_scan.pdf", "2017-02-28", true},
		{"/invoices/Saal.pdf", "", false},
		{"/invoices_BEZ2017-01-03/Saal.pdf", "", false},
		{"Saal_BEZ2017-02-30.pdf", "", false},
		{"Saal_BEZ17-01-03.pdf", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			d, ok := PaymentDate(tc.path)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, d.String())
			}
		})
	}
}

func TestApplyPaymentDate(t *testing.T) {
	e := core.Expense{
		SourceDocument: "/in/Pixum_BEZ2017-01-03.pdf",
		RecognizerName: "Pixum",
		Category:       core.ExternalService,
		Date:           core.NewDate(2016, 12, 18),
	}
	got, applied := ApplyPaymentDate(e)
	assert.True(t, applied)
	assert.Equal(t, "2017-01-03", got.Date.String())
	assert.Equal(t, "2016-12-18", e.Date.String(), "input must not change")

	e.SourceDocument = "/in/Pixum.pdf"
	got, applied = ApplyPaymentDate(e)
	assert.False(t, applied)
	assert.Equal(t, "2016-12-18", got.Date.String())
}
