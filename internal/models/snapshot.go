package models

// Snapshot completo que expone la API Java en /recommender/data.
// Los campos numéricos pueden llegar como número o como string
// ("25", "19.90"), por eso se reciben como `any` y se coercionan
// recién en el data processor.

type SnapshotResponse struct {
	Success bool          `json:"success"`
	Data    *SnapshotData `json:"data"`
}

// Las secciones se declaran como slices: una key ausente queda en nil,
// un arreglo vacío queda en slice vacío no-nil. La validación usa esa
// diferencia para detectar secciones faltantes.
type SnapshotData struct {
	Users          []UserRecord    `json:"users"`
	Products       []ProductRecord `json:"products"`
	OrderHistories []OrderRecord   `json:"orderHistories"`
}

type UserRecord struct {
	ID     string `json:"id"`
	Age    any    `json:"age"`    // number | string
	Gender any    `json:"gender"` // "true" | "false" | otro (= faltante)
}

type ProductRecord struct {
	ID               string `json:"id"`
	ProductVariantID string `json:"productVariantId"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Brand            string `json:"brand"`
	Material         string `json:"material"`
	Feature          string `json:"feature"`
	Price            any    `json:"price"` // number | string
}

type OrderRecord struct {
	ClientID          string `json:"clientId"`
	ProductVariantID  string `json:"productVariantId"`
	Quantity          any    `json:"quantity"`
	PurchaseTimestamp int64  `json:"purchaseTimestamp"` // epoch millis
}
