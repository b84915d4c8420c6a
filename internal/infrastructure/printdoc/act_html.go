// Package printdoc genera la versión imprimible (HTML) del acta de baja,
// pensada para imprimirse desde el navegador de la consola.
package printdoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const actStyle = `body{font-family:serif;margin:2em}h1{font-size:1.3em;text-align:center}` +
	`table{width:100%;border-collapse:collapse;margin:1em 0}` +
	`th,td{border:1px solid #333;padding:4px 8px;font-size:.9em}` +
	`.meta{color:#444;font-size:.9em}.total{text-align:right;font-weight:bold}` +
	`.sign{margin-top:2.5em}.sign td{border:none;padding:8px}`

// HTMLRenderer implementa usecase.ActHTMLRenderer construyendo el documento
// como árbol con etree. Los importes se formatean con la localización es.
type HTMLRenderer struct {
	printer *message.Printer
}

var _ usecase.ActHTMLRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer construye el renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{printer: message.NewPrinter(language.Spanish)}
}

// RenderActHTML serializa el acta completa como página HTML autocontenida.
func (r *HTMLRenderer) RenderActHTML(act *entity.WriteOffAct) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText("Acta N° " + act.ActNumber)
	head.CreateElement("style").SetText(actStyle)

	body := html.CreateElement("body")

	title := act.Title
	if title == "" {
		title = "Acta de baja de inventario"
	}
	body.CreateElement("h1").SetText(fmt.Sprintf("%s N° %s", title, act.ActNumber))

	meta := body.CreateElement("p")
	meta.CreateAttr("class", "meta")
	meta.SetText(fmt.Sprintf("Fecha: %s. Responsable: %s. Aprueba: %s.",
		act.ActDate.Format("02/01/2006"), act.Responsible, act.ApprovedBy))
	if len(act.CommissionMembers) > 0 {
		members := body.CreateElement("p")
		members.CreateAttr("class", "meta")
		members.SetText("Comisión: " + strings.Join(act.CommissionMembers, ", "))
	}
	if act.Reason != "" {
		reason := body.CreateElement("p")
		reason.CreateAttr("class", "meta")
		reason.SetText("Motivo: " + act.Reason)
	}

	r.itemsTable(body, act)
	r.signatures(body, act)

	var buf bytes.Buffer
	doc.Indent(2)
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("printdoc: serializar acta: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) itemsTable(body *etree.Element, act *entity.WriteOffAct) {
	table := body.CreateElement("table")
	header := table.CreateElement("tr")
	for _, h := range []string{"N°", "Descripción", "N° inventario", "Cant.", "Precio", "Suma", "Motivo"} {
		header.CreateElement("th").SetText(h)
	}
	for i, it := range act.Items {
		tr := table.CreateElement("tr")
		tr.CreateElement("td").SetText(fmt.Sprintf("%d", i+1))
		tr.CreateElement("td").SetText(it.ProductName)
		tr.CreateElement("td").SetText(it.InventoryNumber)
		tr.CreateElement("td").SetText(it.Quantity.String())
		tr.CreateElement("td").SetText(r.money(it.Price))
		tr.CreateElement("td").SetText(r.money(it.Price.Mul(it.Quantity)))
		tr.CreateElement("td").SetText(it.Reason)
	}
	totalRow := table.CreateElement("tr")
	label := totalRow.CreateElement("td")
	label.CreateAttr("colspan", "5")
	label.CreateAttr("class", "total")
	label.SetText("Total del acta:")
	total := totalRow.CreateElement("td")
	total.CreateAttr("class", "total")
	total.SetText(r.money(act.TotalSum()))
	totalRow.CreateElement("td")
}

func (r *HTMLRenderer) signatures(body *etree.Element, act *entity.WriteOffAct) {
	table := body.CreateElement("table")
	table.CreateAttr("class", "sign")
	sign := func(role, name string) {
		tr := table.CreateElement("tr")
		tr.CreateElement("td").SetText(role)
		tr.CreateElement("td").SetText("_____________________")
		tr.CreateElement("td").SetText(name)
	}
	sign("Responsable material:", act.Responsible)
	sign("Aprobó:", act.ApprovedBy)
	for _, m := range act.CommissionMembers {
		sign("Miembro de la comisión:", m)
	}
}

// money formatea un importe con separadores de miles localizados.
func (r *HTMLRenderer) money(d decimal.Decimal) string {
	f, _ := d.Float64()
	return r.printer.Sprintf("%.2f", f)
}
