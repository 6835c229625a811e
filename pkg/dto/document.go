package dto

// DocumentCreate is the payload for seeding the metadata of a fresh
// document. BaseCurrency is an ISO 4217 code; left empty, balances are shown
// as bare amounts until one is set.
type DocumentCreate struct {
	Name         string `validate:"required"`
	Description  string
	BaseCurrency string `validate:"omitempty,len=3,uppercase"`
}
