package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfexpenses/internal/core"
)

func TestGuessDate(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Rechnung vom 14.03.2017\nLieferung 20.03.2017", "2017-03-14", true},
		{"Beleg 02.01.17 10:42", "2017-01-02", true},
		{"ungültig 31.02.2017 gültig 01.03.2017", "2017-03-01", true},
		{"Datum: 2017-03-14", "1900-01-01", false},
		{"", "1900-01-01", false},
	}
	for _, tc := range cases {
		d, ok := guessDate(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.want, d.String(), tc.text)
	}
}

func TestGuessAmount(t *testing.T) {
	cases := []struct {
		text  string
		cents int64
		ok    bool
	}{
		{"Reparatur 35,00\nRechnungsbetrag:   47,50 EUR", 4750, true},
		{"Zwischensumme: 10,00\nGesamtbetrag: 11,90", 1190, true},
		{"SUMME 1.234,56", 123456, true},
		{"Total amount due:\n  11,10", 1110, true},
		{"Bruttoumsatz *3,00 EUR", 300, true},
		{"Preis 12,00", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		m, ok := guessAmount(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.cents, m.Cents, tc.text)
	}
}

func TestTemplate(t *testing.T) {
	e := template("nothing useful", "/in/scan.pdf", nil)
	assert.Equal(t, core.ManualRecognizer, e.RecognizerName)
	assert.Equal(t, core.Undefined, e.Category)
	assert.True(t, core.ManualEntryDate.Equal(e.Date))
	assert.Equal(t, core.Money{}, e.Amount)
	assert.NoError(t, e.Validate())

	hint := MustRecognizer("Post", core.PostageCosts, `x`, `(?P<date>.)(?P<amount>.)`)
	e = template("Beleg 02.01.17\nBruttoumsatz *3,00 EUR", "/in/post.pdf", hint)
	assert.Equal(t, "Post", e.RecognizerName)
	assert.Equal(t, core.PostageCosts, e.Category)
	assert.True(t, e.Template)
	assert.True(t, e.IsManual())
	assert.Equal(t, "2017-01-02", e.Date.String())
	assert.Equal(t, int64(300), e.Amount.Cents)
}
