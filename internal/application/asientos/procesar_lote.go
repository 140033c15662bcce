package asientos

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cvallejos/asientos-api/internal/application/dto"
	"github.com/cvallejos/asientos-api/internal/domain"
	"github.com/cvallejos/asientos-api/internal/domain/contable"
	"github.com/cvallejos/asientos-api/internal/domain/entity"
	"github.com/cvallejos/asientos-api/internal/domain/repository"
	"github.com/cvallejos/asientos-api/pkg/logger"
)

// toleranciaExport: discrepancia admitida entre neto+IVA y el importe total
// informado por el export antes de recalcular el neto.
var toleranciaExport = decimal.NewFromInt(1)

// Config parámetros inyectados del pipeline. El índice, la tabla de
// alícuotas y la tolerancia cambian por norma, nunca dentro del núcleo.
type Config struct {
	IndiceMensual decimal.Decimal
	Alicuotas     contable.TablaAlicuotas
	Tolerancia    decimal.Decimal // tolerancia absoluta de partida doble
	Trabajadores  int             // tamaño del pool; <=0 usa NumCPU
}

// ProcesarLoteUseCase transforma un lote de filas del export en un libro
// cuadrado. Sin estado entre lotes: cada invocación es independiente.
type ProcesarLoteUseCase struct {
	cfg       Config
	cifrador  CifradorCUIT
	auditoria repository.AuditoriaRepository // opcional; nil desactiva la traza
	log       *logger.Logger
}

// ResultadoLote es la salida del pipeline: el libro verificado más el
// detalle de descartes y los registros de auditoría del lote.
type ResultadoLote struct {
	LoteID    string
	Libro     *entity.Libro
	Descartes []dto.Descarte
	Auditoria []*entity.RegistroAuditoria
}

// Resumen arma el resumen para el contrato de salida.
func (r *ResultadoLote) Resumen() dto.ResumenLote {
	debe, haber := r.Libro.Totales()
	procesados := len(r.Auditoria)
	return dto.ResumenLote{
		LoteID:      r.LoteID,
		Procesados:  procesados,
		Descartados: len(r.Descartes),
		Descartes:   r.Descartes,
		TotalDebe:   debe.StringFixed(2),
		TotalHaber:  haber.StringFixed(2),
		Estado:      r.Libro.Estado.String(),
	}
}

// NewProcesarLoteUseCase construye el caso de uso. La configuración
// incompleta (tabla vacía, cifrador ausente, índice negativo) es un error
// fatal de arranque, no de fila.
func NewProcesarLoteUseCase(cfg Config, cifrador CifradorCUIT, auditoria repository.AuditoriaRepository, log *logger.Logger) (*ProcesarLoteUseCase, error) {
	if cifrador == nil {
		return nil, fmt.Errorf("cifrador CUIT: %w", domain.ErrConfigFaltante)
	}
	if len(cfg.Alicuotas) == 0 {
		return nil, fmt.Errorf("tabla de alícuotas: %w", domain.ErrConfigFaltante)
	}
	if cfg.IndiceMensual.IsNegative() {
		return nil, fmt.Errorf("índice mensual negativo: %w", domain.ErrConfigFaltante)
	}
	if cfg.Tolerancia.IsZero() {
		cfg.Tolerancia = decimal.NewFromInt(1)
	}
	if cfg.Trabajadores <= 0 {
		cfg.Trabajadores = runtime.NumCPU()
	}
	return &ProcesarLoteUseCase{cfg: cfg, cifrador: cifrador, auditoria: auditoria, log: log}, nil
}

// resultado por fila: o bien líneas generadas, o un descarte, o un error fatal.
type resultadoFila struct {
	lineas   []entity.LineaAsiento
	registro *entity.RegistroAuditoria
	descarte *dto.Descarte
	err      error
}

// Procesar corre el pipeline completo sobre el lote. Las filas son
// independientes y se reparten entre trabajadores; el libro final conserva
// el orden del archivo de origen para que la auditoría sea reproducible.
//
// Política de errores: CAE o montos inválidos descartan la fila y el lote
// sigue; períodos negativos, montos de asiento no positivos, configuración
// ausente o libro descuadrado abortan el lote sin entregar libro.
func (uc *ProcesarLoteUseCase) Procesar(ctx context.Context, filas []dto.FilaCompra) (*ResultadoLote, error) {
	loteID := uuid.New().String()
	inicio := time.Now()

	resultados := make([]resultadoFila, len(filas))
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < uc.cfg.Trabajadores; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				resultados[i] = uc.procesarFila(loteID, i, filas[i])
			}
		}()
	}
	for i := range filas {
		indices <- i
	}
	close(indices)
	wg.Wait()

	libro := &entity.Libro{}
	res := &ResultadoLote{LoteID: loteID, Libro: libro}
	for _, r := range resultados {
		if r.err != nil {
			return nil, r.err
		}
		if r.descarte != nil {
			res.Descartes = append(res.Descartes, *r.descarte)
			continue
		}
		libro.Lineas = append(libro.Lineas, r.lineas...)
		res.Auditoria = append(res.Auditoria, r.registro)
	}

	estado, diferencia := libro.Verificar(uc.cfg.Tolerancia)
	if estado == entity.Descuadrado {
		debe, haber := libro.Totales()
		return nil, &domain.DescuadreError{
			TotalDebe:  debe,
			TotalHaber: haber,
			Diferencia: diferencia,
			Tolerancia: uc.cfg.Tolerancia,
		}
	}

	if uc.auditoria != nil && len(res.Auditoria) > 0 {
		if err := uc.auditoria.Guardar(ctx, res.Auditoria); err != nil {
			// La traza es un canal lateral: se informa pero no tira el lote.
			uc.log.Error().Err(err).Str("lote", loteID).Msg("guardar auditoría")
		}
	}

	uc.log.Info().
		Str("lote", loteID).
		Int("filas", len(filas)).
		Int("procesados", len(res.Auditoria)).
		Int("descartados", len(res.Descartes)).
		Int("lineas", len(libro.Lineas)).
		Dur("duracion", time.Since(inicio)).
		Msg("lote procesado")
	return res, nil
}

// procesarFila corre una fila por el pipeline: normalizar → validar CAE →
// ajustar RT 54 + resolver RG 4115 → cifrar CUIT → generar asientos.
func (uc *ProcesarLoteUseCase) procesarFila(loteID string, idx int, f dto.FilaCompra) resultadoFila {
	tipo := entity.TipoDesdeCodigoAFIP(f.TipoCodigo)
	referencia := fmt.Sprintf("%s %s-%s", tipo, f.PuntoVenta, f.Numero)

	neto, iva, err := uc.normalizarMontos(tipo, f)
	if err != nil {
		if errors.Is(err, domain.ErrMontoInvalido) {
			uc.log.Warn().Str("lote", loteID).Str("comprobante", referencia).Err(err).Msg("fila descartada")
			return resultadoFila{descarte: &dto.Descarte{Fila: idx, Referencia: referencia, Motivo: "monto inválido"}}
		}
		return resultadoFila{err: err}
	}

	if !contable.ValidarCAE(f.CAE) {
		uc.log.Warn().Str("lote", loteID).Str("comprobante", referencia).Str("cae", f.CAE).Msg("CAE inválido, fila descartada")
		return resultadoFila{descarte: &dto.Descarte{Fila: idx, Referencia: referencia, Motivo: "CAE inválido"}}
	}

	c := entity.Comprobante{
		Tipo:          tipo,
		PuntoVenta:    f.PuntoVenta,
		Numero:        f.Numero,
		Fecha:         f.Fecha,
		CUITProveedor: f.CUITProveedor,
		CAE:           f.CAE,
		MontoNeto:     neto,
		IVA:           iva,
		CodTributo:    f.CodTributo,
		MesesRT54:     f.MesesRT54,
	}

	// RT 54 sobre neto e IVA (independientes entre sí).
	if c.NetoAjustado, err = contable.AjustarRT54(neto.Abs(), f.MesesRT54, uc.cfg.IndiceMensual); err != nil {
		return resultadoFila{err: err}
	}
	if c.IVAAjustado, err = contable.AjustarRT54(iva.Abs(), f.MesesRT54, uc.cfg.IndiceMensual); err != nil {
		return resultadoFila{err: err}
	}

	// RG 4115: deducibilidad y signo direccional.
	deducible, signo := contable.ResolverDeducibilidad(tipo, f.CodTributo, uc.cfg.Alicuotas)
	if deducible {
		c.IVADeducible = c.IVAAjustado.Mul(decimal.NewFromInt(int64(signo)))
	}

	// Ley 25.326: el CUIT plano no sale del pipeline.
	if c.CUITCifrado, err = uc.cifrador.Cifrar(f.CUITProveedor); err != nil {
		return resultadoFila{err: fmt.Errorf("cifrar CUIT: %w", err)}
	}

	lineas, err := GenerarAsientos(&c)
	if err != nil {
		return resultadoFila{err: err}
	}

	return resultadoFila{
		lineas: lineas,
		registro: &entity.RegistroAuditoria{
			ID:           uuid.New().String(),
			LoteID:       loteID,
			CUITCifrado:  c.CUITCifrado,
			CAE:          c.CAE,
			NetoOriginal: c.MontoNeto,
			NetoAjustado: c.NetoAjustado,
			IVADeducible: c.IVADeducible,
			FechaCarga:   time.Now(),
		},
	}
}

// normalizarMontos convierte los importes crudos y los concilia contra el
// importe total del export cuando viene informado: la NC trae el IVA
// embebido en el total, y un neto que no cierra contra total − IVA se
// recalcula (discrepancias de hasta $1 se toleran).
func (uc *ProcesarLoteUseCase) normalizarMontos(tipo entity.TipoComprobante, f dto.FilaCompra) (neto, iva decimal.Decimal, err error) {
	if neto, err = contable.NormalizarMonto(f.MontoNeto); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if iva, err = contable.NormalizarMonto(f.IVA); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	total, err := contable.NormalizarMonto(f.ImporteTotal)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if total.IsZero() {
		return neto, iva, nil
	}
	if tipo.Naturaleza == entity.NotaCredito {
		// El export asienta la NC por el total, IVA incluido.
		return total, decimal.Zero, nil
	}
	if neto.Add(iva).Sub(total).Abs().GreaterThan(toleranciaExport) {
		neto = total.Sub(iva)
	}
	return neto, iva, nil
}
