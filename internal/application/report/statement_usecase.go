package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// maxStatementEvents limita las filas de eventos en el PDF.
const maxStatementEvents = 500

// StatementUseCase genera el estado de cuenta (PDF) de una empresa:
// datos de contacto, paquete, vencimiento, cuota y eventos registrados.
type StatementUseCase struct {
	companyRepo repository.CompanyRepository
	packageRepo repository.PackageRepository
	eventRepo   repository.EventRepository
	generator   StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso inyectando todas sus dependencias.
func NewStatementUseCase(
	companyRepo repository.CompanyRepository,
	packageRepo repository.PackageRepository,
	eventRepo repository.EventRepository,
	generator StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{
		companyRepo: companyRepo,
		packageRepo: packageRepo,
		eventRepo:   eventRepo,
		generator:   generator,
	}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound   si la empresa no existe.
//   - domain.ErrForbidden  si el principal no es superadmin ni pertenece a la empresa.
func (uc *StatementUseCase) Download(ctx context.Context, p access.Principal, companyID string) (pdfBytes []byte, filename string, err error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("statement: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	if err := access.Check(p, access.ActionRead, access.Company(companyID)); err != nil {
		return nil, "", err
	}

	data := StatementData{Company: company, GeneratedAt: time.Now()}
	if company.HasPackage() {
		data.Package, err = uc.packageRepo.GetByID(ctx, *company.ActivePackageID)
		if err != nil {
			return nil, "", fmt.Errorf("statement: obtener paquete: %w", err)
		}
	}
	data.Events, err = uc.eventRepo.ListByCompany(ctx, companyID, maxStatementEvents, 0)
	if err != nil {
		return nil, "", fmt.Errorf("statement: listar eventos: %w", err)
	}
	data.EventsTotal, err = uc.eventRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("statement: contar eventos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("estado-cuenta-%s.pdf", company.ID), nil
}
