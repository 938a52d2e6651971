package inventory

import (
	"context"

	"github.com/yacouba/Boutique-api/internal/domain/entity"
	"github.com/yacouba/Boutique-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma
// transacción. Lo implementa la infraestructura (postgres.TxRunner);
// el caso de uso solo conoce este puerto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessions repository.SessionRepository,
		stock repository.StockRepository,
	) error) error
}

// SessionPDFGenerator genera el acta PDF de una sesión de conteo.
type SessionPDFGenerator interface {
	GenerateSessionPDF(ctx context.Context, session *entity.InventorySession, store *entity.Store) ([]byte, error)
}
