package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// TransactionUseCase orquesta el ciclo de vida de las transacciones de
// inventario: construye el agregado, lo persiste y concilia sus eventos
// de stock dentro de una sola transacción de BD (TxRunner).
type TransactionUseCase struct {
	txRunner     TxRunner
	transactions repository.TransactionRepository // lecturas fuera de tx
	instanceRepo repository.ProductInstanceRepository
	supplierRepo repository.SupplierRepository
	clientRepo   repository.ClientRepository
	locationRepo repository.StorageLocationRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	transactions repository.TransactionRepository,
	instanceRepo repository.ProductInstanceRepository,
	supplierRepo repository.SupplierRepository,
	clientRepo repository.ClientRepository,
	locationRepo repository.StorageLocationRepository,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:     txRunner,
		transactions: transactions,
		instanceRepo: instanceRepo,
		supplierRepo: supplierRepo,
		clientRepo:   clientRepo,
		locationRepo: locationRepo,
	}
}

// CreateProcurement crea una compra a proveedor con líneas y pagos
// iniciales, siembra el libro de existencias y devuelve la transacción.
func (uc *TransactionUseCase) CreateProcurement(ctx context.Context, in dto.CreateProcurementRequest) (*dto.TransactionResponse, error) {
	if err := uc.ensureLocation(in.StorageLocationID); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	items, err := uc.buildItemInputs(transaction.KindProcurement, in.Items)
	if err != nil {
		return nil, err
	}
	t, evt, err := transaction.NewProcurement(in.StorageLocationID, in.SupplierID, in.Date, items, toPaymentInputs(in.Payments))
	if err != nil {
		return nil, err
	}
	if err := uc.persistNew(ctx, t, evt); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// CreateSale crea una venta a cliente; el evento inicial retira stock.
func (uc *TransactionUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.TransactionResponse, error) {
	if err := uc.ensureLocation(in.StorageLocationID); err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
	}
	items, err := uc.buildItemInputs(transaction.KindSale, in.Items)
	if err != nil {
		return nil, err
	}
	t, evt, err := transaction.NewSale(in.StorageLocationID, in.ClientID, in.Date, items, toPaymentInputs(in.Payments))
	if err != nil {
		return nil, err
	}
	if err := uc.persistNew(ctx, t, evt); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// CreateAdjustment crea un ajuste de inventario (sin pagos).
func (uc *TransactionUseCase) CreateAdjustment(ctx context.Context, in dto.CreateAdjustmentRequest) (*dto.TransactionResponse, error) {
	if err := uc.ensureLocation(in.StorageLocationID); err != nil {
		return nil, err
	}
	items, err := uc.buildItemInputs(transaction.KindAdjustment, in.Items)
	if err != nil {
		return nil, err
	}
	t, evt, err := transaction.NewAdjustment(in.StorageLocationID, in.Date, items)
	if err != nil {
		return nil, err
	}
	if err := uc.persistNew(ctx, t, evt); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

// AddItems agrega líneas a una transacción DRAFT existente.
func (uc *TransactionUseCase) AddItems(ctx context.Context, transactionID string, items []dto.TransactionItemRequest) (*dto.TransactionResponse, error) {
	var resp *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, stockRepo repository.StoredProductRepository) error {
		t, err := uc.lockTransaction(txRepo, transactionID)
		if err != nil {
			return err
		}
		inputs, err := uc.buildItemInputs(t.Kind, items)
		if err != nil {
			return err
		}
		evt, err := t.AddItems(inputs)
		if err != nil {
			return err
		}
		if err := txRepo.Save(t); err != nil {
			return err
		}
		if err := reconcile(stockRepo, evt); err != nil {
			return err
		}
		resp = toTransactionResponse(t)
		return nil
	})
	return resp, err
}

// UpdateItems actualiza líneas (precio, cantidad, altas/bajas de seriales).
func (uc *TransactionUseCase) UpdateItems(ctx context.Context, transactionID string, items []dto.UpdateTransactionItemRequest) (*dto.TransactionResponse, error) {
	inputs := make([]transaction.UpdateItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, transaction.UpdateItemInput{
			ProductInstanceID: it.ProductInstanceID,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			SerialsToAdd:      it.SerialsToAdd,
			SerialsToRemove:   it.SerialsToRemove,
		})
	}
	var resp *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, stockRepo repository.StoredProductRepository) error {
		t, err := uc.lockTransaction(txRepo, transactionID)
		if err != nil {
			return err
		}
		evt, err := t.UpdateItems(inputs)
		if err != nil {
			return err
		}
		if err := txRepo.Save(t); err != nil {
			return err
		}
		if err := reconcile(stockRepo, evt); err != nil {
			return err
		}
		resp = toTransactionResponse(t)
		return nil
	})
	return resp, err
}

// RemoveItems elimina líneas y revierte su efecto en bodega.
func (uc *TransactionUseCase) RemoveItems(ctx context.Context, transactionID string, productInstanceIDs []string) (*dto.TransactionResponse, error) {
	var resp *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, stockRepo repository.StoredProductRepository) error {
		t, err := uc.lockTransaction(txRepo, transactionID)
		if err != nil {
			return err
		}
		evt, err := t.RemoveItems(productInstanceIDs)
		if err != nil {
			return err
		}
		if err := txRepo.Save(t); err != nil {
			return err
		}
		if err := reconcile(stockRepo, evt); err != nil {
			return err
		}
		resp = toTransactionResponse(t)
		return nil
	})
	return resp, err
}

// AddPayments registra pagos sobre una compra o venta.
func (uc *TransactionUseCase) AddPayments(ctx context.Context, transactionID string, payments []dto.PaymentRequest) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.AddPayments(toPaymentInputs(payments))
	})
}

// UpdatePayments actualiza pagos existentes por id.
func (uc *TransactionUseCase) UpdatePayments(ctx context.Context, transactionID string, payments []dto.UpdatePaymentRequest) (*dto.TransactionResponse, error) {
	inputs := make([]transaction.UpdatePaymentInput, 0, len(payments))
	for _, p := range payments {
		inputs = append(inputs, transaction.UpdatePaymentInput{
			ID:     p.ID,
			Amount: p.Amount,
			Method: p.Method,
			Date:   p.Date,
		})
	}
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.UpdatePayments(inputs)
	})
}

// RemovePayments elimina pagos por id.
func (uc *TransactionUseCase) RemovePayments(ctx context.Context, transactionID string, paymentIDs []string) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.RemovePayments(paymentIDs)
	})
}

// UpdateSupplier cambia el proveedor de una compra. La existencia del
// proveedor se verifica aquí: el agregado confía en este input.
func (uc *TransactionUseCase) UpdateSupplier(ctx context.Context, transactionID, supplierID string) (*dto.TransactionResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.UpdateSupplier(supplierID)
	})
}

// UpdateClient cambia el cliente de una venta.
func (uc *TransactionUseCase) UpdateClient(ctx context.Context, transactionID, clientID string) (*dto.TransactionResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.UpdateClient(clientID)
	})
}

// Process marca la transacción como procesada (cierra mutaciones).
func (uc *TransactionUseCase) Process(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.MarkProcessed()
	})
}

// Reopen reabre una transacción procesada para corregirla.
func (uc *TransactionUseCase) Reopen(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.Reopen()
	})
}

// Cancel cancela la transacción (estado terminal, no revierte stock).
func (uc *TransactionUseCase) Cancel(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.Cancel()
	})
}

// GetByID obtiene una transacción por id (lectura sin bloqueo).
func (uc *TransactionUseCase) GetByID(_ context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.transactions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return toTransactionResponse(t), nil
}

// List lista transacciones con filtros opcionales.
func (uc *TransactionUseCase) List(_ context.Context, kind *transaction.Kind, storageLocationID string, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.transactions.List(kind, storageLocationID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// mutate carga la transacción con bloqueo, aplica op y persiste, todo en
// una unidad de trabajo. Para operaciones que no generan eventos de stock.
func (uc *TransactionUseCase) mutate(ctx context.Context, transactionID string, op func(*transaction.Transaction) error) (*dto.TransactionResponse, error) {
	var resp *dto.TransactionResponse
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, _ repository.StoredProductRepository) error {
		t, err := uc.lockTransaction(txRepo, transactionID)
		if err != nil {
			return err
		}
		if err := op(t); err != nil {
			return err
		}
		if err := txRepo.Save(t); err != nil {
			return err
		}
		resp = toTransactionResponse(t)
		return nil
	})
	return resp, err
}

// persistNew persiste una transacción recién creada y concilia su evento
// inicial, atómicamente.
func (uc *TransactionUseCase) persistNew(ctx context.Context, t *transaction.Transaction, evt *transaction.ProductsQuantityChangedEvent) error {
	return uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, stockRepo repository.StoredProductRepository) error {
		if err := txRepo.Create(t); err != nil {
			return err
		}
		return reconcile(stockRepo, evt)
	})
}

func (uc *TransactionUseCase) lockTransaction(txRepo repository.TransactionRepository, id string) (*transaction.Transaction, error) {
	t, err := txRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return t, nil
}

func (uc *TransactionUseCase) ensureLocation(id string) error {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return nil
}

// buildItemInputs resuelve los metadatos de rastreo de cada SKU y arma
// las entradas del agregado. El precio unitario por defecto sale del SKU
// según el tipo de transacción.
func (uc *TransactionUseCase) buildItemInputs(kind transaction.Kind, items []dto.TransactionItemRequest) ([]transaction.NewItemInput, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductInstanceID)
	}
	instances, err := uc.instanceRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	inputs := make([]transaction.NewItemInput, 0, len(items))
	for _, it := range items {
		inst, ok := instances[it.ProductInstanceID]
		if !ok || inst == nil {
			return nil, fmt.Errorf("%w: SKU %s", domain.ErrNotFound, it.ProductInstanceID)
		}
		price := inst.PurchasePrice
		if kind == transaction.KindSale {
			price = inst.SalePrice
		}
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		inputs = append(inputs, transaction.NewItemInput{
			ProductInstanceID: inst.ID,
			Quantity:          it.Quantity,
			UnitPrice:         price,
			IsTracked:         inst.IsTracked,
			ShelfLifeDays:     inst.ShelfLifeDays,
			SerialNumbers:     it.SerialNumbers,
		})
	}
	return inputs, nil
}

func toPaymentInputs(payments []dto.PaymentRequest) []transaction.NewPaymentInput {
	if len(payments) == 0 {
		return nil
	}
	out := make([]transaction.NewPaymentInput, 0, len(payments))
	for _, p := range payments {
		out = append(out, transaction.NewPaymentInput{Amount: p.Amount, Method: p.Method, Date: p.Date})
	}
	return out
}

func toTransactionResponse(t *transaction.Transaction) *dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		units := make([]dto.UnitResponse, 0, len(item.Units))
		for _, u := range item.Units {
			units = append(units, dto.UnitResponse{
				SerialNumber:   u.SerialNumber,
				Status:         string(u.Status),
				ExpirationDate: u.ExpirationDate,
			})
		}
		items = append(items, dto.TransactionItemResponse{
			ProductInstanceID: item.ProductInstanceID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			TotalPrice:        item.TotalPrice(),
			IsTracked:         item.IsTracked,
			Units:             units,
		})
	}
	var payments []dto.PaymentResponse
	for _, p := range t.Payments {
		payments = append(payments, dto.PaymentResponse{
			ID:     p.ID,
			Amount: p.PayedAmount,
			Method: p.Method,
			Date:   p.PaymentDate,
		})
	}
	return &dto.TransactionResponse{
		ID:                t.ID,
		Kind:              string(t.Kind),
		StorageLocationID: t.StorageLocationID,
		SupplierID:        t.SupplierID,
		ClientID:          t.ClientID,
		Date:              t.Date,
		Status:            string(t.Status),
		TotalAmount:       t.TotalAmount,
		AmountLeftToPay:   t.AmountLeftToPay(),
		Items:             items,
		Payments:          payments,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
