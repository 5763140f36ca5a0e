package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amirphl/ppp-rental/app/render"
	"github.com/amirphl/ppp-rental/models"
	"github.com/amirphl/ppp-rental/pricing"
	"github.com/amirphl/ppp-rental/repository"
	"github.com/amirphl/ppp-rental/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// QuoteDocumentFlow produces the printable and spreadsheet views of quotes
type QuoteDocumentFlow interface {
	PrintQuote(ctx context.Context, id uint) (string, error)
	ExportQuotes(ctx context.Context) (string, []byte, error)
}

// DocumentSettings are the presentation settings shared by printed documents
type DocumentSettings struct {
	CompanyName string
	VATRate     float64
	Location    *time.Location
}

type QuoteDocumentFlowImpl struct {
	quoteRepo       repository.QuoteRepository
	serviceItemRepo repository.EquipmentServiceItemRepository
	additionalRepo  repository.EquipmentAdditionalRepository
	renderer        *render.Renderer
	settings        DocumentSettings
	clock           Clock
	logger          *zap.Logger
}

func NewQuoteDocumentFlow(
	quoteRepo repository.QuoteRepository,
	serviceItemRepo repository.EquipmentServiceItemRepository,
	additionalRepo repository.EquipmentAdditionalRepository,
	renderer *render.Renderer,
	settings DocumentSettings,
	clock Clock,
	logger *zap.Logger,
) QuoteDocumentFlow {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &QuoteDocumentFlowImpl{
		quoteRepo:       quoteRepo,
		serviceItemRepo: serviceItemRepo,
		additionalRepo:  additionalRepo,
		renderer:        renderer,
		settings:        settings,
		clock:           clockOrDefault(clock),
		logger:          loggerOrNop(logger),
	}
}

func (f *QuoteDocumentFlowImpl) PrintQuote(ctx context.Context, id uint) (string, error) {
	quote, err := f.quoteRepo.ByIDWithDetails(ctx, id)
	if err != nil {
		return "", NewBusinessError("QUOTE_LOOKUP_FAILED", "Failed to load quote", err)
	}
	if quote == nil {
		return "", ErrQuoteNotFound
	}

	serviceItems := map[uint][]models.EquipmentServiceItem{}
	lines := make([]render.LineDocument, 0, len(quote.Items))
	for _, item := range quote.Items {
		line := render.LineDocument{Item: item}
		if item.Equipment != nil {
			line.EquipmentName = item.Equipment.Name
		}

		if item.IncludeServiceItems {
			named, ok := serviceItems[item.EquipmentID]
			if !ok {
				rows, err := f.serviceItemRepo.ListByEquipment(ctx, item.EquipmentID)
				if err != nil {
					return "", NewBusinessError("SERVICE_ITEMS_LOOKUP_FAILED", "Failed to load service items", err)
				}
				named = deref(rows)
				serviceItems[item.EquipmentID] = named
			}
			line.ServiceItems = named
		}

		if item.Notes != nil {
			if n, ok := pricing.ParseNotes(*item.Notes).(pricing.StructuredNotes); ok {
				if line.Additional, err = f.extras(ctx, item.EquipmentID, models.AdditionalTypeAdditional, n.SelectedAdditional); err != nil {
					return "", err
				}
				if line.Accessories, err = f.extras(ctx, item.EquipmentID, models.AdditionalTypeAccessories, n.SelectedAccessories); err != nil {
					return "", err
				}
			}
		}
		lines = append(lines, line)
	}

	html, err := f.renderer.RenderQuote(render.QuoteDocument{
		Quote:       *quote,
		Lines:       lines,
		CompanyName: f.settings.CompanyName,
		VATRate:     f.settings.VATRate,
		GeneratedAt: f.clock(),
		Location:    f.settings.Location,
	})
	if err != nil {
		return "", NewBusinessError("QUOTE_RENDER_FAILED", "Failed to render quote", err)
	}

	documentsRenderedTotal.WithLabelValues("quote").Inc()
	f.logger.Debug("Quote rendered", append(requestFields(ctx), zap.Uint("quote_id", id), zap.Int("bytes", len(html)))...)
	return html, nil
}

// extras loads the selected rows that still exist; removed catalog rows are skipped.
func (f *QuoteDocumentFlowImpl) extras(ctx context.Context, equipmentID uint, kind string, ids []uint) ([]models.EquipmentAdditional, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := f.additionalRepo.ByIDs(ctx, equipmentID, kind, ids)
	if err != nil {
		return nil, NewBusinessError("EQUIPMENT_ADDITIONAL_LOOKUP_FAILED", "Failed to load selected extras", err)
	}
	return deref(rows), nil
}

var exportHeader = []string{"quote_number", "created_at", "client", "items", "total_net", "total_gross", "created_by", "guest"}

func (f *QuoteDocumentFlowImpl) ExportQuotes(ctx context.Context) (string, []byte, error) {
	quotes, err := f.quoteRepo.ListWithClient(ctx, 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("QUOTE_LIST_FAILED", "Failed to list quotes", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	const sheet = "Quotes"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := exportHeader
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel header", err)
	}

	for i, q := range quotes {
		client := ""
		if q.Client != nil {
			client = q.Client.CompanyName
		}
		record := []any{
			q.QuoteNumber,
			q.CreatedAt.In(f.settings.Location).Format("2006-01-02 15:04"),
			client,
			len(q.Items),
			q.TotalNet,
			q.TotalGross,
			utils.Deref(q.CreatedByName),
			strconv.FormatBool(q.IsGuestQuote),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(sheet, cellRef, &record); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel row", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	documentsRenderedTotal.WithLabelValues("export").Inc()
	filename := fmt.Sprintf("quotes_%s.xlsx", f.clock().In(f.settings.Location).Format("20060102"))
	return filename, buf.Bytes(), nil
}

func deref[T any](rows []*T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}
