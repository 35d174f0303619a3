package domain

// SortOrder es la direccion de ordenamiento de un listado.
type SortOrder int

const (
	SortDesc SortOrder = iota
	SortAsc
)

// ParseSortOrder acepta "asc"; cualquier otro valor ordena descendente.
func ParseSortOrder(s string) SortOrder {
	if s == "asc" {
		return SortAsc
	}
	return SortDesc
}

const DefaultPageLimit = 9

// Page describe un listado paginado por desplazamiento.
type Page struct {
	StartIndex int
	Limit      int
	Order      SortOrder
}

// MaxPageLimit acota el tamaño de pagina pedido por el cliente.
const MaxPageLimit = 100

// NewPage normaliza los valores recibidos: indices negativos pasan a 0 y
// limites fuera de rango toman el valor por defecto o el maximo.
func NewPage(startIndex, limit int, order SortOrder) Page {
	if startIndex < 0 {
		startIndex = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{StartIndex: startIndex, Limit: limit, Order: order}
}
