package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Tipos de transacción de inventario.
const (
	KindProcurement Kind = "PROCUREMENT" // compra a proveedor (suma stock)
	KindSale        Kind = "SALE"        // venta a cliente (resta stock)
	KindAdjustment  Kind = "ADJUSTMENT"  // ajuste de inventario, sin pagos
)

// Kind discrimina el tipo de transacción. Reemplaza la jerarquía de clases
// del modelo original por un único agregado con unión etiquetada.
type Kind string

// Estados del ciclo de vida de una transacción. Solo las transacciones en
// DRAFT aceptan mutaciones de ítems o pagos.
const (
	StatusDraft     Status = "DRAFT"
	StatusProcessed Status = "PROCESSED"
	StatusCanceled  Status = "CANCELED"
)

// Status estado explícito de la transacción.
type Status string

// Transaction es el agregado de transacciones de inventario: compra, venta
// o ajuste sobre una bodega. Es dueño exclusivo de sus líneas (Items), de
// las unidades serializadas de cada línea y de sus pagos.
//
// Invariantes:
//   - TotalAmount == Σ Items[i].Quantity * Items[i].UnitPrice tras cada mutación.
//   - ProductInstanceID único entre las líneas.
//   - Payments solo existe para compras y ventas (terceros).
//
// El agregado no es seguro para mutación concurrente: el caller serializa
// el acceso por transacción (fila bloqueada en la unidad de trabajo).
type Transaction struct {
	ID                string
	Kind              Kind
	StorageLocationID string
	SupplierID        string // solo PROCUREMENT
	ClientID          string // solo SALE
	Date              time.Time
	Status            Status
	TotalAmount       decimal.Decimal
	Items             []*Item
	Payments          []*Payment
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProcurement construye una compra a proveedor en estado DRAFT con sus
// líneas (y pagos) iniciales. Devuelve además el evento de stock con las
// cantidades iniciales como deltas positivos, o nil si no hay líneas.
func NewProcurement(storageLocationID, supplierID string, date *time.Time, items []NewItemInput, payments []NewPaymentInput) (*Transaction, *ProductsQuantityChangedEvent, error) {
	if supplierID == "" {
		return nil, nil, fmt.Errorf("%w: supplier_id vacío", domain.ErrInvalidInput)
	}
	t, err := newTransaction(KindProcurement, storageLocationID, date)
	if err != nil {
		return nil, nil, err
	}
	t.SupplierID = supplierID
	evt, err := t.seed(items, payments)
	if err != nil {
		return nil, nil, err
	}
	return t, evt, nil
}

// NewSale construye una venta a cliente en estado DRAFT. El evento inicial
// lleva deltas negativos: vender retira stock de la bodega.
func NewSale(storageLocationID, clientID string, date *time.Time, items []NewItemInput, payments []NewPaymentInput) (*Transaction, *ProductsQuantityChangedEvent, error) {
	if clientID == "" {
		return nil, nil, fmt.Errorf("%w: client_id vacío", domain.ErrInvalidInput)
	}
	t, err := newTransaction(KindSale, storageLocationID, date)
	if err != nil {
		return nil, nil, err
	}
	t.ClientID = clientID
	evt, err := t.seed(items, payments)
	if err != nil {
		return nil, nil, err
	}
	return t, evt, nil
}

// NewAdjustment construye un ajuste de inventario (sin pagos).
func NewAdjustment(storageLocationID string, date *time.Time, items []NewItemInput) (*Transaction, *ProductsQuantityChangedEvent, error) {
	t, err := newTransaction(KindAdjustment, storageLocationID, date)
	if err != nil {
		return nil, nil, err
	}
	evt, err := t.seed(items, nil)
	if err != nil {
		return nil, nil, err
	}
	return t, evt, nil
}

func newTransaction(kind Kind, storageLocationID string, date *time.Time) (*Transaction, error) {
	if storageLocationID == "" {
		return nil, fmt.Errorf("%w: storage_location_id vacío", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	d := now
	if date != nil {
		d = *date
	}
	return &Transaction{
		ID:                uuid.New().String(),
		Kind:              kind,
		StorageLocationID: storageLocationID,
		Date:              d,
		Status:            StatusDraft,
		TotalAmount:       decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// seed agrega líneas y pagos iniciales durante la construcción.
func (t *Transaction) seed(items []NewItemInput, payments []NewPaymentInput) (*ProductsQuantityChangedEvent, error) {
	var evt *ProductsQuantityChangedEvent
	if len(items) > 0 {
		var err error
		evt, err = t.AddItems(items)
		if err != nil {
			return nil, err
		}
	}
	if len(payments) > 0 {
		if err := t.AddPayments(payments); err != nil {
			return nil, err
		}
	}
	return evt, nil
}

// HasPayments indica si el tipo de transacción maneja pagos (terceros).
func (t *Transaction) HasPayments() bool {
	return t.Kind == KindProcurement || t.Kind == KindSale
}

// AmountLeftToPay devuelve el saldo pendiente: TotalAmount − Σ pagos.
// Puede ser negativo (sobrepago, o total reducido tras quitar líneas).
// Para ajustes siempre es cero.
func (t *Transaction) AmountLeftToPay() decimal.Decimal {
	if !t.HasPayments() {
		return decimal.Zero
	}
	payed := decimal.Zero
	for _, p := range t.Payments {
		payed = payed.Add(p.PayedAmount)
	}
	return t.TotalAmount.Sub(payed)
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

// AddItems agrega líneas nuevas en lote. Valida todo el lote antes de tocar
// el agregado: ids de producto repetidos (en el lote o ya presentes) fallan
// con ErrDuplicate y cantidades/precios negativos con ErrInvalidInput.
// Devuelve el evento de stock con un delta firmado por línea.
func (t *Transaction) AddItems(inputs []NewItemInput) (*ProductsQuantityChangedEvent, error) {
	if err := t.ensureDraft(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: lote de ítems vacío", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(inputs))
	staged := make([]*Item, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ProductInstanceID]; ok {
			return nil, fmt.Errorf("%w: producto %s repetido en el lote", domain.ErrDuplicate, in.ProductInstanceID)
		}
		seen[in.ProductInstanceID] = struct{}{}
		if t.findItem(in.ProductInstanceID) != nil {
			return nil, fmt.Errorf("%w: producto %s ya existe en la transacción", domain.ErrDuplicate, in.ProductInstanceID)
		}
		item, err := newItem(in)
		if err != nil {
			return nil, err
		}
		staged = append(staged, item)
	}

	evt := t.newEvent()
	for _, item := range staged {
		t.Items = append(t.Items, item)
		evt.Entries = append(evt.Entries, ProductEntry{
			ProductInstanceID: item.ProductInstanceID,
			QuantityDelta:     t.ledgerSign() * item.Quantity,
			IsTracked:         item.IsTracked,
			ShelfLifeDays:     item.ShelfLifeDays,
			Units:             unitChanges(serialsOf(item.Units), t.addStatus()),
		})
	}
	t.recalculateAmount()
	return evt, nil
}

// UpdateItems actualiza líneas en lote: precio, cantidad y altas/bajas de
// seriales explícitas. Todo el lote se valida primero; una entrada mala no
// deja mutaciones parciales. El evento lleva el delta firmado por línea con
// las unidades agregadas y retiradas concatenadas.
func (t *Transaction) UpdateItems(inputs []UpdateItemInput) (*ProductsQuantityChangedEvent, error) {
	if err := t.ensureDraft(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: lote de ítems vacío", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(inputs))
	staged := make([]*stagedItemUpdate, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ProductInstanceID]; ok {
			return nil, fmt.Errorf("%w: producto %s repetido en el lote", domain.ErrDuplicate, in.ProductInstanceID)
		}
		seen[in.ProductInstanceID] = struct{}{}
		item := t.findItem(in.ProductInstanceID)
		if item == nil {
			return nil, fmt.Errorf("%w: producto %s no existe en la transacción", domain.ErrNotFound, in.ProductInstanceID)
		}
		st, err := item.stageUpdate(in)
		if err != nil {
			return nil, err
		}
		staged = append(staged, st)
	}

	evt := t.newEvent()
	for _, st := range staged {
		oldQty := st.item.Quantity
		st.apply()

		units := unitChanges(st.toAdd, t.addStatus())
		units = append(units, unitChanges(st.removed, t.removeStatus())...)
		evt.Entries = append(evt.Entries, ProductEntry{
			ProductInstanceID: st.item.ProductInstanceID,
			QuantityDelta:     t.ledgerSign() * (st.item.Quantity - oldQty),
			IsTracked:         st.item.IsTracked,
			ShelfLifeDays:     st.item.ShelfLifeDays,
			Units:             units,
		})
	}
	t.recalculateAmount()
	return evt, nil
}

// RemoveItems elimina líneas por id de producto. El evento invierte el
// signo del delta: quitar una línea de compra devuelve (resta) ese stock,
// quitar una línea de venta lo retorna a la bodega.
func (t *Transaction) RemoveItems(productInstanceIDs []string) (*ProductsQuantityChangedEvent, error) {
	if err := t.ensureDraft(); err != nil {
		return nil, err
	}
	if len(productInstanceIDs) == 0 {
		return nil, fmt.Errorf("%w: lote de ids vacío", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(productInstanceIDs))
	toRemove := make([]*Item, 0, len(productInstanceIDs))
	for _, id := range productInstanceIDs {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: producto %s repetido en el lote", domain.ErrDuplicate, id)
		}
		seen[id] = struct{}{}
		item := t.findItem(id)
		if item == nil {
			return nil, fmt.Errorf("%w: producto %s no existe en la transacción", domain.ErrNotFound, id)
		}
		toRemove = append(toRemove, item)
	}

	evt := t.newEvent()
	kept := t.Items[:0]
	for _, item := range t.Items {
		if _, gone := seen[item.ProductInstanceID]; !gone {
			kept = append(kept, item)
		}
	}
	t.Items = kept
	for _, item := range toRemove {
		evt.Entries = append(evt.Entries, ProductEntry{
			ProductInstanceID: item.ProductInstanceID,
			QuantityDelta:     -t.ledgerSign() * item.Quantity,
			IsTracked:         item.IsTracked,
			ShelfLifeDays:     item.ShelfLifeDays,
			Units:             unitChanges(serialsOf(item.Units), t.removeStatus()),
		})
	}
	t.recalculateAmount()
	return evt, nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

// AddPayments registra pagos en lote. Valida todo el lote primero.
func (t *Transaction) AddPayments(inputs []NewPaymentInput) error {
	if err := t.ensureDraft(); err != nil {
		return err
	}
	if err := t.ensurePayments(); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: lote de pagos vacío", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	staged := make([]*Payment, 0, len(inputs))
	for _, in := range inputs {
		p, err := newPayment(in, now)
		if err != nil {
			return err
		}
		staged = append(staged, p)
	}
	t.Payments = append(t.Payments, staged...)
	t.UpdatedAt = now
	return nil
}

// UpdatePayments actualiza pagos existentes por id. Un id desconocido falla
// con ErrNotFound: registrar pagos nuevos es responsabilidad de AddPayments.
func (t *Transaction) UpdatePayments(inputs []UpdatePaymentInput) error {
	if err := t.ensureDraft(); err != nil {
		return err
	}
	if err := t.ensurePayments(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(inputs))
	staged := make([]*Payment, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ID]; ok {
			return fmt.Errorf("%w: pago %s repetido en el lote", domain.ErrDuplicate, in.ID)
		}
		seen[in.ID] = struct{}{}
		p := t.findPayment(in.ID)
		if p == nil {
			return fmt.Errorf("%w: pago %s no existe en la transacción", domain.ErrNotFound, in.ID)
		}
		if in.Amount != nil && in.Amount.IsNegative() {
			return fmt.Errorf("%w: monto de pago negativo", domain.ErrInvalidInput)
		}
		if in.Method != nil && *in.Method == "" {
			return fmt.Errorf("%w: método de pago vacío", domain.ErrInvalidInput)
		}
		staged = append(staged, p)
	}
	for idx, in := range inputs {
		p := staged[idx]
		if in.Amount != nil {
			p.PayedAmount = *in.Amount
		}
		if in.Method != nil {
			p.Method = *in.Method
		}
		if in.Date != nil {
			p.PaymentDate = *in.Date
		}
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// RemovePayments elimina pagos por id.
func (t *Transaction) RemovePayments(paymentIDs []string) error {
	if err := t.ensureDraft(); err != nil {
		return err
	}
	if err := t.ensurePayments(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(paymentIDs))
	for _, id := range paymentIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: pago %s repetido en el lote", domain.ErrDuplicate, id)
		}
		seen[id] = struct{}{}
		if t.findPayment(id) == nil {
			return fmt.Errorf("%w: pago %s no existe en la transacción", domain.ErrNotFound, id)
		}
	}
	kept := t.Payments[:0]
	for _, p := range t.Payments {
		if _, gone := seen[p.ID]; !gone {
			kept = append(kept, p)
		}
	}
	t.Payments = kept
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ── Terceros ──────────────────────────────────────────────────────────────────

// UpdateSupplier cambia el proveedor de una compra. La existencia del
// proveedor ya fue verificada por la capa de aplicación.
func (t *Transaction) UpdateSupplier(supplierID string) error {
	if t.Kind != KindProcurement {
		return fmt.Errorf("%w: la transacción no es una compra", domain.ErrInvalidInput)
	}
	if supplierID == "" {
		return fmt.Errorf("%w: supplier_id vacío", domain.ErrInvalidInput)
	}
	if err := t.ensureDraft(); err != nil {
		return err
	}
	t.SupplierID = supplierID
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateClient cambia el cliente de una venta.
func (t *Transaction) UpdateClient(clientID string) error {
	if t.Kind != KindSale {
		return fmt.Errorf("%w: la transacción no es una venta", domain.ErrInvalidInput)
	}
	if clientID == "" {
		return fmt.Errorf("%w: client_id vacío", domain.ErrInvalidInput)
	}
	if err := t.ensureDraft(); err != nil {
		return err
	}
	t.ClientID = clientID
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ── Estado ────────────────────────────────────────────────────────────────────

// MarkProcessed transiciona DRAFT → PROCESSED. Una transacción procesada
// rechaza cualquier mutación posterior de ítems o pagos.
func (t *Transaction) MarkProcessed() error {
	if t.Status != StatusDraft {
		return fmt.Errorf("%w: solo una transacción DRAFT puede procesarse (estado %s)", domain.ErrConflict, t.Status)
	}
	t.Status = StatusProcessed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Reopen transiciona PROCESSED → DRAFT para corregir una transacción.
func (t *Transaction) Reopen() error {
	if t.Status != StatusProcessed {
		return fmt.Errorf("%w: solo una transacción PROCESSED puede reabrirse (estado %s)", domain.ErrConflict, t.Status)
	}
	t.Status = StatusDraft
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel marca la transacción como cancelada. No revierte stock: la
// cancelación es un estado terminal, no una operación de conciliación.
func (t *Transaction) Cancel() error {
	if t.Status == StatusCanceled {
		return fmt.Errorf("%w: la transacción ya está cancelada", domain.ErrConflict)
	}
	t.Status = StatusCanceled
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// recalculateAmount recalcula TotalAmount = Σ subtotales de línea.
func (t *Transaction) recalculateAmount() {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.TotalPrice())
	}
	t.TotalAmount = total
	t.UpdatedAt = time.Now().UTC()
}

// ledgerSign devuelve la dirección del efecto en bodega según el tipo.
func (t *Transaction) ledgerSign() int {
	if t.Kind == KindSale {
		return -1
	}
	return 1
}

// addStatus estado que adquieren las unidades agregadas por este tipo.
func (t *Transaction) addStatus() UnitStatus {
	if t.Kind == KindSale {
		return UnitStatusSold
	}
	return UnitStatusAvailable
}

// removeStatus estado de las unidades retiradas: quitar una venta devuelve
// las unidades a la bodega como disponibles.
func (t *Transaction) removeStatus() UnitStatus {
	if t.Kind == KindSale {
		return UnitStatusAvailable
	}
	return UnitStatusRemoved
}

func (t *Transaction) findItem(productInstanceID string) *Item {
	for _, item := range t.Items {
		if item.ProductInstanceID == productInstanceID {
			return item
		}
	}
	return nil
}

func (t *Transaction) findPayment(id string) *Payment {
	for _, p := range t.Payments {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (t *Transaction) ensureDraft() error {
	if t.Status != StatusDraft {
		return fmt.Errorf("%w: la transacción %s no admite cambios", domain.ErrConflict, t.Status)
	}
	return nil
}

func (t *Transaction) ensurePayments() error {
	if !t.HasPayments() {
		return fmt.Errorf("%w: un ajuste no maneja pagos", domain.ErrInvalidInput)
	}
	return nil
}

func (t *Transaction) newEvent() *ProductsQuantityChangedEvent {
	return &ProductsQuantityChangedEvent{
		TransactionID:     t.ID,
		StorageLocationID: t.StorageLocationID,
		Kind:              t.Kind,
		OccurredAt:        time.Now().UTC(),
	}
}

func serialsOf(units []Unit) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.SerialNumber)
	}
	return out
}

func unitChanges(serials []string, status UnitStatus) []UnitChange {
	if len(serials) == 0 {
		return nil
	}
	out := make([]UnitChange, 0, len(serials))
	for _, sn := range serials {
		out = append(out, UnitChange{SerialNumber: sn, Status: status})
	}
	return out
}
