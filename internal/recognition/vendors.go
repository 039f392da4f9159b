package recognition

import "pdfexpenses/internal/core"

// builtinRecognizers lists the known vendors. Order matters: the first
// matching selector wins. New vendors are appended here.
func builtinRecognizers() []*Recognizer {
	return []*Recognizer{
		MustRecognizer(
			"Saal",
			core.ExternalService,
			`www\.saal-digital\.de`,
			`Rechnungsdatum:\s*(?P<date>\d{2}\.\d{2}\.\d{4}).*Gesamtbetrag:\s*(?P<amount>\d+,\d{2})`,
		),
		MustRecognizer(
			"Post",
			core.PostageCosts,
			`Deutsche\s+Post\s+AG.*Postwertzeichen\s+ohne\s+Zuschlag`,
			`(?P<date>\d{2}\.\d{2}\.\d{2}).*Bruttoumsatz\s+\*(?P<amount>\d+,\d{2})\s+EUR`,
		),
		MustRecognizer(
			"Tintenalarm",
			core.OfficeSupplies,
			`tintenalarm`,
			`(?P<date>\d{2}\.\d{2}\.\d{4}).*Summe:\s+(?P<amount>\d+,\d{2})\s+`,
		),
		MustRecognizer(
			"Pixum",
			core.ExternalService,
			`Pixum`,
			`(?P<date>\d{2}\.\d{2}\.\d{4}).*Gesamt EUR:\s+(?P<amount>\d+,\d{2})\s+`,
		),
	}
}
