package repository

// TxRepos agrupa los repositorios ligados a una misma transacción.
type TxRepos struct {
	Items     ItemRepository
	History   HistoryRepository
	Supplies  SupplyRepository
	Companies CompanyRepository
	Users     UserRepository
}

// TxRunner ejecuta fn dentro de una transacción de base de datos. Si fn devuelve
// error se hace rollback; si no, commit. Es la pieza que mantiene como unidad
// atómica los pares de escrituras del dominio: mutación-de-stock +
// entrada-de-historial, alta-de-empresa + alta-de-CEO.
type TxRunner interface {
	Run(fn func(r TxRepos) error) error
}
