package render

const quoteTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
.header { text-align: center; margin-bottom: 30px; }
.company-logo { font-size: 24px; font-weight: bold; color: #0066cc; }
.quote-title { font-size: 18px; margin-top: 10px; }
.quote-info { display: flex; justify-content: space-between; margin-bottom: 30px; }
.quote-info div { flex: 1; }
.quote-info h3 { margin: 0 0 10px 0; color: #0066cc; }
.quote-info p { margin: 5px 0; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th { background-color: #0066cc; color: white; padding: 12px; text-align: left; }
td { padding: 10px; border-bottom: 1px solid #ddd; }
td.center { text-align: center; }
td.right { text-align: right; }
td.strong { font-weight: bold; }
.detail td { padding: 8px 15px; border-bottom: 1px solid #eee; font-size: 0.9em; }
.detail-fuel td { background-color: #f8f9ff; }
.detail-installation td { background-color: #f0fff8; }
.detail-disassembly td { background-color: #fff8f0; }
.detail-travel td { background-color: #f8fff0; }
.detail-service td { background-color: #fff0f8; }
.detail-extras td { background-color: #f0f8ff; }
.detail-notes td { background-color: #f5f5f5; }
.total-row { font-weight: bold; background-color: #f0f0f0; }
.total-row td { text-align: right; padding: 15px; }
.footer { margin-top: 30px; text-align: center; font-size: 12px; color: #666; }
@media print {
  body { -webkit-print-color-adjust: exact; }
  .no-print { display: none; }
}
.print-button { position: fixed; top: 20px; right: 20px; z-index: 1000; background: #0066cc; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
</style>
</head>
<body>
<button class="print-button no-print" onclick="window.print()">🖨️ Drukuj</button>
<div class="header">
<div class="company-logo">{{.CompanyName}}</div>
<div class="quote-title">Wycena sprzętu</div>
</div>
<div class="quote-info">
<div>
<h3>Dane klienta:</h3>
<p><strong>{{.Client.CompanyName}}</strong></p>
{{- with .Client.ContactPerson}}
<p>Osoba kontaktowa: {{.}}</p>
{{- end}}
{{- with .Client.Email}}
<p>Email: {{.}}</p>
{{- end}}
{{- with .Client.Phone}}
<p>Telefon: {{.}}</p>
{{- end}}
{{- with .Client.Address}}
<p>Adres: {{.}}</p>
{{- end}}
{{- with .Client.NIP}}
<p>NIP: {{.}}</p>
{{- end}}
</div>
<div>
<h3>Dane wyceny:</h3>
<p><strong>Numer:</strong> {{.Number}}</p>
<p><strong>Data utworzenia:</strong> {{.CreatedAt}}</p>
<p><strong>Utworzył:</strong> {{.CreatedBy}}</p>
</div>
</div>
<table>
<thead>
<tr>
<th>Nazwa sprzętu</th>
<th>Ilość</th>
<th>Okres wynajmu</th>
<th>Cena za dzień</th>
<th>Rabat</th>
<th>Wartość</th>
</tr>
</thead>
<tbody>
{{- range .Lines}}
<tr>
<td class="strong">{{.Name}}</td>
<td class="center">{{.Quantity}}</td>
<td class="center">{{.Period}}</td>
<td class="right">{{.PricePerDay}}</td>
<td class="center">{{.Discount}}</td>
<td class="right strong">{{.Total}}</td>
</tr>
{{- with .Fuel}}
<tr class="detail detail-fuel"><td colspan="6">
<strong>🛢️ Uwzględniono koszt paliwa:</strong> {{.Cost}}<br>
{{- if .Kilometers}}
• Zużycie: {{.ConsumptionPer100km}} l/100km<br>
• Kilometry dziennie: {{.KilometersPerDay}} km<br>
• Całkowite kilometry: {{.TotalKilometers}} km<br>
• Całkowite zużycie: {{.TotalConsumption}} l<br>
• Cena paliwa: {{.PricePerLiter}}/l
{{- else}}
• Zużycie: {{.ConsumptionLH}} l/h<br>
• Godziny pracy dziennie: {{.HoursPerDay}} h<br>
• Całkowite zużycie: {{.TotalConsumption}} l<br>
• Cena paliwa: {{.PricePerLiter}}/l
{{- end}}
</td></tr>
{{- end}}
{{- range $crew := .CrewBlocks}}
<tr class="detail {{$crew.Class}}"><td colspan="6">
<strong>{{$crew.Heading}}</strong> {{$crew.Cost}}<br>
• Dystans (tam i z powrotem): {{$crew.Distance}} km<br>
• Liczba techników: {{$crew.Technicians}}<br>
• Stawka za technika: {{$crew.RatePerTechnician}}<br>
• Stawka za km: {{$crew.RatePerKm}}/km
{{- if $crew.Trips}}<br>
• Ilość wyjazdów: {{$crew.Trips}}
{{- end}}
</td></tr>
{{- end}}
{{- with .ServiceItems}}
<tr class="detail detail-service"><td colspan="6">
<strong>🛠️ Uwzględniono koszty serwisowe:</strong> {{.Cost}}<br>
{{- range .Lines}}
• {{.Name}}: {{.Amount}}<br>
{{- end}}
</td></tr>
{{- end}}
{{- with .Extras}}
<tr class="detail detail-extras"><td colspan="6">
<strong>📦 Uwzględniono wyposażenie dodatkowe i akcesoria:</strong> {{.Total}}<br>
{{- with .Additional}}
<strong>Wyposażenie dodatkowe:</strong><br>
{{- range .Lines}}
&nbsp;&nbsp;• {{.Name}}: {{.Price}} × {{.Quantity}} = {{.Cost}}<br>
{{- end}}
&nbsp;&nbsp;<strong>Suma wyposażenia dodatkowego: {{.Sum}}</strong><br><br>
{{- end}}
{{- with .AdditionalSummary}}
• Wyposażenie dodatkowe: {{.}}<br>
{{- end}}
{{- with .Accessories}}
<strong>Akcesoria:</strong><br>
{{- range .Lines}}
&nbsp;&nbsp;• {{.Name}}: {{.Price}} × {{.Quantity}} = {{.Cost}}<br>
{{- end}}
&nbsp;&nbsp;<strong>Suma akcesoriów: {{.Sum}}</strong><br>
{{- end}}
{{- with .AccessoriesSummary}}
• Akcesoria: {{.}}<br>
{{- end}}
</td></tr>
{{- end}}
{{- with .Notes}}
<tr class="detail detail-notes"><td colspan="6">
<strong>📝 Uwagi:</strong> {{.}}
</td></tr>
{{- end}}
{{- end}}
<tr class="total-row">
<td colspan="5">Wartość netto:</td>
<td>{{.TotalNet}}</td>
</tr>
<tr class="total-row">
<td colspan="5">{{.VATLabel}}</td>
<td>{{.TotalGross}}</td>
</tr>
</tbody>
</table>
<div class="footer">
<p>Wycena wygenerowana: {{.GeneratedAt}}</p>
<p>PPP :: Program - Wynajem sprzętu</p>
</div>
</body>
</html>
`

const assessmentTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
.header { text-align: center; border-bottom: 2px solid #333; padding-bottom: 20px; margin-bottom: 30px; }
.company-name { font-size: 18px; font-weight: bold; color: #0066cc; }
.title { font-size: 24px; font-weight: bold; margin: 10px 0; }
.client-info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 30px; }
.category { margin-bottom: 30px; }
.category-title { font-size: 18px; font-weight: bold; color: #333; border-bottom: 1px solid #ccc; padding-bottom: 5px; margin-bottom: 15px; }
.question-item { margin-bottom: 15px; padding: 10px; border-left: 3px solid #0066cc; background: #f9f9f9; }
.question { font-weight: bold; margin-bottom: 5px; }
.answer { color: #555; }
.footer { margin-top: 40px; text-align: center; font-size: 12px; color: #666; }
@media print {
  body { -webkit-print-color-adjust: exact; }
  .no-print { display: none; }
}
.print-button { position: fixed; top: 20px; right: 20px; z-index: 1000; background: #0066cc; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
</style>
</head>
<body>
<button class="print-button no-print" onclick="window.print()">🖨️ Drukuj</button>
<div class="header">
<div class="company-name">{{.CompanyName}}</div>
<div class="title">Badanie Potrzeb</div>
<div>Nr: {{.Number}}</div>
<div>Data utworzenia: {{.CreatedAt}}</div>
</div>
{{- with .Client}}
<div class="client-info">
<h3>Informacje o kliencie</h3>
<p><strong>Firma:</strong> {{.CompanyName}}</p>
{{- with .ContactPerson}}
<p><strong>Osoba kontaktowa:</strong> {{.}}</p>
{{- end}}
{{- with .Phone}}
<p><strong>Telefon:</strong> {{.}}</p>
{{- end}}
{{- with .Email}}
<p><strong>Email:</strong> {{.}}</p>
{{- end}}
{{- with .Address}}
<p><strong>Adres:</strong> {{.}}</p>
{{- end}}
</div>
{{- end}}
{{- range .Categories}}
<div class="category">
<div class="category-title">{{.Name}}</div>
{{- range .Answers}}
<div class="question-item">
<div class="question">{{.Question}}</div>
<div class="answer">{{.Answer}}</div>
</div>
{{- end}}
</div>
{{- end}}
<div class="footer">
<p>PPP :: Program - Wynajem sprzętu</p>
<p>Wygenerowano: {{.GeneratedAt}}</p>
</div>
</body>
</html>
`
