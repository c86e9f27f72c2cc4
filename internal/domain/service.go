package domain

// Service услуга, которую можно забронировать. Справочные данные, при бронировании не меняются.
type Service struct {
	ID              string
	Name            string
	Price           float64
	DurationMinutes int // не влияет на сетку слотов
	CompanyID       *string
	ProfessionalID  *string
}

// ServicesFilter фильтр каталога услуг
type ServicesFilter struct {
	CompanyID      *string
	ProfessionalID *string
}
