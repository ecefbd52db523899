package memory

import (
	"context"
)

type txKey struct{}

// TxManager выполняет функции последовательно, имитируя SERIALIZABLE транзакции
// Откат не поддерживается: функция должна писать только после всех проверок
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов уже держит блокировку
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
