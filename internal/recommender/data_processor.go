package recommender

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"productosml/internal/models"
)

// Tablas internas ya coercionadas. NaN marca un numérico faltante.

type UserRow struct {
	ID     string
	Age    float64 // NaN si no se pudo coercionar
	Gender float64 // 1 = "true", 0 = "false", NaN si faltante
}

type ProductRow struct {
	ID        string
	VariantID string
	Name      string
	Category  string
	Brand     string
	Material  string
	Feature   string
	Price     float64 // NaN si no se pudo coercionar
}

type OrderRow struct {
	ClientID    string
	VariantID   string
	Quantity    float64
	PurchasedAt time.Time
}

// DataProcessor convierte el snapshot crudo en las tres tablas y deriva
// de ellas la matriz de interacciones y la matriz de features de producto.
type DataProcessor struct {
	users    []UserRow
	products []ProductRow
	orders   []OrderRow
}

func NewDataProcessor() *DataProcessor {
	return &DataProcessor{}
}

// Process arma las tres tablas. Las fallas de coerción numérica se vuelven
// valores faltantes, nunca errores. Solo falla si el payload está
// estructuralmente malformado, cosa que la validación ya debió rechazar.
func (p *DataProcessor) Process(data *models.SnapshotData) error {
	if data == nil || data.Users == nil || data.Products == nil || data.OrderHistories == nil {
		return fmt.Errorf("snapshot malformado: falta alguna sección del payload")
	}

	p.users = make([]UserRow, 0, len(data.Users))
	for _, u := range data.Users {
		p.users = append(p.users, UserRow{
			ID:     u.ID,
			Age:    toFloat(u.Age),
			Gender: genderFlag(u.Gender),
		})
	}

	p.products = make([]ProductRow, 0, len(data.Products))
	for _, pr := range data.Products {
		p.products = append(p.products, ProductRow{
			ID:        pr.ID,
			VariantID: pr.ProductVariantID,
			Name:      pr.Name,
			Category:  pr.Category,
			Brand:     pr.Brand,
			Material:  pr.Material,
			Feature:   pr.Feature,
			Price:     toFloat(pr.Price),
		})
	}

	p.orders = make([]OrderRow, 0, len(data.OrderHistories))
	for _, o := range data.OrderHistories {
		qty := toFloat(o.Quantity)
		if math.IsNaN(qty) {
			qty = 0
		}
		p.orders = append(p.orders, OrderRow{
			ClientID:    o.ClientID,
			VariantID:   o.ProductVariantID,
			Quantity:    qty,
			PurchasedAt: time.UnixMilli(o.PurchaseTimestamp).UTC(),
		})
	}

	return nil
}

// UserFeatures devuelve [edad, género] para el usuario, con 0 en lo que
// falte. Usuario desconocido = vector cero, no error: los consumidores
// tratan el vector cero como "usuario sin datos".
func (p *DataProcessor) UserFeatures(userID string) []float64 {
	for _, u := range p.users {
		if u.ID != userID {
			continue
		}
		age, gender := u.Age, u.Gender
		if math.IsNaN(age) {
			age = 0
		}
		if math.IsNaN(gender) {
			gender = 0
		}
		return []float64{age, gender}
	}
	return []float64{0, 0}
}

// atributos categóricos que se expanden a columnas indicador,
// en este orden fijo
var featureAttrs = []struct {
	name  string
	value func(ProductRow) string
}{
	{"category", func(r ProductRow) string { return r.Category }},
	{"brand", func(r ProductRow) string { return r.Brand }},
	{"material", func(r ProductRow) string { return r.Material }},
	{"feature", func(r ProductRow) string { return r.Feature }},
}

// ProductFeatures arma la matriz de features: una columna indicador por
// valor distinto de cada atributo categórico (fijadas al entrenar) más una
// columna de precio normalizada por z-score. Devuelve una matriz vacía si
// no hay productos (contrato fail-soft).
func (p *DataProcessor) ProductFeatures() (Matrix, error) {
	if len(p.products) == 0 {
		return Matrix{}, fmt.Errorf("no hay productos en el snapshot")
	}

	var cols []string
	colPos := make(map[string]int)
	for _, attr := range featureAttrs {
		seen := make(map[string]bool)
		var vals []string
		for _, pr := range p.products {
			v := attr.value(pr)
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
		sort.Strings(vals)
		for _, v := range vals {
			name := attr.name + "_" + v
			colPos[name] = len(cols)
			cols = append(cols, name)
		}
	}
	priceCol := len(cols)
	cols = append(cols, "price")

	// media y desviación muestral del precio, ignorando faltantes
	var sum float64
	var cnt int
	for _, pr := range p.products {
		if !math.IsNaN(pr.Price) {
			sum += pr.Price
			cnt++
		}
	}
	var mean, std float64
	if cnt > 0 {
		mean = sum / float64(cnt)
	}
	if cnt > 1 {
		var ss float64
		for _, pr := range p.products {
			if !math.IsNaN(pr.Price) {
				d := pr.Price - mean
				ss += d * d
			}
		}
		std = math.Sqrt(ss / float64(cnt-1))
	}

	m := Matrix{
		Index:   make([]string, len(p.products)),
		Columns: cols,
		Data:    make([][]float64, len(p.products)),
	}
	for i, pr := range p.products {
		m.Index[i] = pr.ID
		row := make([]float64, len(cols))
		for _, attr := range featureAttrs {
			row[colPos[attr.name+"_"+attr.value(pr)]] = 1
		}
		// si la desviación es cero (o no hay suficientes precios) el
		// precio normalizado queda en 0 para todas las filas; un precio
		// faltante también normaliza a 0 (equivale a la media)
		if std != 0 && !math.IsNaN(pr.Price) {
			row[priceCol] = (pr.Price - mean) / std
		}
		m.Data[i] = row
	}
	return m, nil
}

// UserProductMatrix arma la matriz de interacciones usuario×variante con
// la suma de cantidades por par. Filas y columnas salen únicamente de la
// tabla de órdenes, ordenadas lexicográficamente. Vacía si no hay órdenes.
func (p *DataProcessor) UserProductMatrix() (Matrix, error) {
	if len(p.orders) == 0 {
		return Matrix{}, fmt.Errorf("no hay órdenes en el snapshot")
	}

	clients := distinctSorted(p.orders, func(o OrderRow) string { return o.ClientID })
	variants := distinctSorted(p.orders, func(o OrderRow) string { return o.VariantID })

	rowPos := make(map[string]int, len(clients))
	for i, c := range clients {
		rowPos[c] = i
	}
	colPos := make(map[string]int, len(variants))
	for i, v := range variants {
		colPos[v] = i
	}

	m := Matrix{Index: clients, Columns: variants, Data: make([][]float64, len(clients))}
	for i := range m.Data {
		m.Data[i] = make([]float64, len(variants))
	}
	for _, o := range p.orders {
		m.Data[rowPos[o.ClientID]][colPos[o.VariantID]] += o.Quantity
	}
	return m, nil
}

// PurchasedVariants lista las variantes distintas que ordenó el usuario,
// en orden de primera aparición.
func (p *DataProcessor) PurchasedVariants(userID string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range p.orders {
		if o.ClientID != userID || seen[o.VariantID] {
			continue
		}
		seen[o.VariantID] = true
		out = append(out, o.VariantID)
	}
	return out
}

func distinctSorted(orders []OrderRow, key func(OrderRow) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range orders {
		k := key(o)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// helpers de coerción (number | string → float64, NaN si no se puede)

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// genderFlag mapea únicamente los strings "true"/"false"; cualquier otra
// cosa cuenta como faltante.
func genderFlag(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return math.NaN()
	}
	switch s {
	case "true":
		return 1
	case "false":
		return 0
	default:
		return math.NaN()
	}
}
