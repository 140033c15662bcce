package dto

import "time"

// FilaCompra es una fila cruda del export de compras, antes de normalizar.
// Los importes viajan como texto tal cual vienen del archivo; el pipeline
// decide si la fila se descarta o se procesa.
type FilaCompra struct {
	TipoCodigo    int       `json:"tipo_codigo"`
	PuntoVenta    string    `json:"punto_venta"`
	Numero        string    `json:"numero"`
	Fecha         time.Time `json:"fecha"`
	CUITProveedor string    `json:"cuit_proveedor"`
	CAE           string    `json:"cae"`
	MontoNeto     string    `json:"monto_neto"`
	IVA           string    `json:"iva"`
	ImporteTotal  string    `json:"importe_total"`
	CodTributo    int       `json:"cod_tributo"`
	MesesRT54     int       `json:"meses_rt54"`
}

// Descarte identifica una fila excluida del libro y el motivo.
type Descarte struct {
	Fila       int    `json:"fila"`
	Referencia string `json:"referencia"`
	Motivo     string `json:"motivo"`
}

// ResumenLote acompaña al libro en la respuesta: totales y descartes.
type ResumenLote struct {
	LoteID      string     `json:"lote_id"`
	Procesados  int        `json:"procesados"`
	Descartados int        `json:"descartados"`
	Descartes   []Descarte `json:"descartes,omitempty"`
	TotalDebe   string     `json:"total_debe"`
	TotalHaber  string     `json:"total_haber"`
	Estado      string     `json:"estado"`
}

// LibroResponse es la respuesta del endpoint de procesamiento.
type LibroResponse struct {
	Resumen ResumenLote  `json:"resumen"`
	Lineas  []LineaLibro `json:"lineas"`
}

// LineaLibro es la línea del libro en el contrato de salida.
type LineaLibro struct {
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
	Cuenta      string `json:"cuenta"`
	Debe        string `json:"debe"`
	Haber       string `json:"haber"`
	Moneda      string `json:"moneda"`
}

// LoginRequest credenciales del operador.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
