package returns

import (
	"context"

	"github.com/yacouba/Boutique-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con el repositorio de devoluciones atado a
// una misma transacción. El alta escribe la cabecera y cada línea en
// sentencias separadas; sin transacción un fallo a mitad dejaría una
// devolución con total pero sin líneas. Lo implementa la infraestructura
// (postgres.ReturnTxRunner).
type TxRunner interface {
	Run(ctx context.Context, fn func(returns repository.ReturnRepository) error) error
}
