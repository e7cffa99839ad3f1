package validation

import (
	"productosml/internal/models"
)

// Valida el snapshot completo antes de pasarlo al pipeline: success en true
// y las tres secciones presentes. El data processor nunca se invoca sobre
// un payload que falle este check.
func ValidateSnapshot(resp *models.SnapshotResponse) bool {
	if resp == nil || !resp.Success {
		return false
	}
	if resp.Data == nil {
		return false
	}
	// sección ausente en el JSON = slice nil (un arreglo vacío sí es válido)
	if resp.Data.Users == nil || resp.Data.Products == nil || resp.Data.OrderHistories == nil {
		return false
	}
	return true
}

// Checks por registro, por si algún día queremos filtrar filas en vez de
// rechazar el snapshot entero.

func ValidateUser(u models.UserRecord) bool {
	return u.ID != ""
}

func ValidateProduct(p models.ProductRecord) bool {
	return p.ID != "" && p.ProductVariantID != "" && p.Name != "" && p.Category != ""
}

func ValidateOrder(o models.OrderRecord) bool {
	return o.ClientID != "" && o.ProductVariantID != "" && o.PurchaseTimestamp != 0
}
