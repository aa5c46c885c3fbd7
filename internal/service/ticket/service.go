package ticket

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

const serviceConditions = "Este servicio no se hace responsable por objetos dejados dentro del vehiculo."

// Ticket page geometry, in centimeters. Thermal-printer receipt size.
const (
	ticketWidth  = 8.0
	ticketHeight = 12.0
)

// Service renders the PDF gate ticket handed to the driver at entry.
// Timestamps are printed in the lot's timezone, amounts in its currency.
type Service struct {
	lotID     string
	loc       *time.Location
	currency  string
	lots      ports.ParkingLotRepository
	vehicles  ports.VehicleRepository
	rates     ports.RateRepository
	rateTypes ports.RateTypeRepository
	now       func() time.Time
	log       *zap.Logger
}

func NewService(lotID, timezone, currency string, lots ports.ParkingLotRepository, vehicles ports.VehicleRepository, rates ports.RateRepository, rateTypes ports.RateTypeRepository, log *zap.Logger) *Service {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn("unknown timezone, falling back to local", zap.String("timezone", timezone), zap.Error(err))
		loc = time.Local
	}
	return &Service{
		lotID:     lotID,
		loc:       loc,
		currency:  currency,
		lots:      lots,
		vehicles:  vehicles,
		rates:     rates,
		rateTypes: rateTypes,
		now:       time.Now,
		log:       log,
	}
}

// GenerateEntryTicket renders the entry ticket PDF for the given plate.
func (s *Service) GenerateEntryTicket(ctx context.Context, plate, attendant string) ([]byte, error) {
	lot, err := s.lots.FindByID(ctx, s.lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}

	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	cost, unit, err := s.rateLine(ctx, vehicle.RateID)
	if err != nil {
		return nil, err
	}

	entryStamp := s.now().In(s.loc).Format("2006-01-02 15:04:05")
	costLine := fmt.Sprintf("%s %s por %s", cost, s.currency, unit)

	qrData := fmt.Sprintf(
		"Parqueadero: %s\nRegistro Comercial: %s\nFecha/Hora de Ingreso: %s\nPlaca: %s\nCosto: $ %s\nAtendido por: %s\nCondiciones: %s",
		lot.Name, lot.CommercialRegistry, entryStamp, plate, costLine, attendant, serviceConditions,
	)
	qrPNG, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "cm",
		Size:    gofpdf.SizeType{Wd: ticketWidth, Ht: ticketHeight},
	})
	pdf.SetMargins(0.5, 0.5, 0.5)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(ticketWidth-1, 0.6, lot.Name, "", 1, "C", false, 0, "")
	pdf.Ln(0.2)

	pdf.SetFont("Helvetica", "", 9)
	line := func(text string) {
		pdf.CellFormat(ticketWidth-1, 0.45, text, "", 1, "L", false, 0, "")
	}
	line(fmt.Sprintf("Registro Comercial: %s", lot.CommercialRegistry))
	line(fmt.Sprintf("Fecha/Hora de Ingreso: %s", entryStamp))
	line(fmt.Sprintf("Placa del Vehiculo: %s", plate))

	pdf.Ln(0.3)
	pdf.SetFont("Helvetica", "B", 9)
	line("Detalles del Servicio")
	pdf.SetFont("Helvetica", "", 9)
	line(fmt.Sprintf("Costo: $ %s", costLine))
	line(fmt.Sprintf("Atendido por: %s", attendant))

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("entry-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("entry-qr", ticketWidth-2.5, ticketHeight-5.5, 2, 2, false, opts, 0, "")

	pdf.Ln(0.5)
	pdf.SetFont("Helvetica", "B", 9)
	line("Condiciones del Servicio:")
	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(ticketWidth-3.2, 0.35, serviceConditions, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}

	s.log.Info("entry ticket generated",
		zap.String("plate", plate),
		zap.String("attendant", attendant),
	)
	return buf.Bytes(), nil
}

// rateLine resolves the vehicle's default rate to a cost amount and the name
// of its billing unit.
func (s *Service) rateLine(ctx context.Context, rateID string) (string, string, error) {
	rate, err := s.rates.FindByID(ctx, rateID)
	if err != nil {
		return "", "", err
	}
	if rate == nil {
		return "", "", domain.ErrRateNotFound
	}

	rateType, err := s.rateTypes.FindByID(ctx, rate.RateTypeID)
	if err != nil {
		return "", "", err
	}
	unit := "hora"
	if rateType != nil {
		unit = rateType.Name
	}

	return rate.Cost.StringFixed(2), unit, nil
}
