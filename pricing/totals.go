package pricing

import "github.com/amirphl/ppp-rental/utils"

type Totals struct {
	Net   float64
	Gross float64
}

// TotalsEngine sums line totals and applies VAT.
type TotalsEngine struct {
	vatRate float64
}

func NewTotalsEngine(vatRate float64) TotalsEngine {
	return TotalsEngine{vatRate: vatRate}
}

func (e TotalsEngine) VATRate() float64 { return e.vatRate }

// Compute always resums every line total; it never adjusts a previous result.
func (e TotalsEngine) Compute(lineTotals []float64) Totals {
	var net float64
	for _, t := range lineTotals {
		net += t
	}
	net = utils.RoundMoney(net)
	return Totals{Net: net, Gross: utils.RoundMoney(net * (1 + e.vatRate))}
}
