package models

import "time"

// Report is a row of the reports table.
type Report struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Title               string     `gorm:"column:title"`
	IssuingOrganization *string    `gorm:"column:issuing_organization"`
	ReleaseDate         *time.Time `gorm:"column:release_date"`
	Language            *string    `gorm:"column:language"`
	URL                 *string    `gorm:"column:url"`
	UploadedTime        *time.Time `gorm:"column:uploaded_time"`
}

// TableName overrides the gorm table name.
func (Report) TableName() string { return TableReports }

// Standard is a row of the standards table.
type Standard struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Title               string     `gorm:"column:title"`
	IssuingOrganization *string    `gorm:"column:issuing_organization"`
	EffectiveDate       time.Time  `gorm:"column:effective_date"`
	ExpirationDate      *time.Time `gorm:"column:expiration_date"`
	StandardNumber      *string    `gorm:"column:standard_number"`
	Language            *string    `gorm:"column:language"`
	URL                 *string    `gorm:"column:url"`
	UploadedTime        *time.Time `gorm:"column:uploaded_time"`
	LastUpdatedTime     *time.Time `gorm:"column:last_updated_time;->"`
}

// TableName overrides the gorm table name.
func (Standard) TableName() string { return TableStandards }

// ESGMetaRow is a row of the esg_meta table.
type ESGMetaRow struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	Country          *string    `gorm:"column:country"`
	CompanyName      string     `gorm:"column:company_name"`
	CompanyShortName *string    `gorm:"column:company_short_name"`
	ReportTitle      string     `gorm:"column:report_title"`
	PublicationDate  *time.Time `gorm:"column:publication_date"`
	Language         *string    `gorm:"column:language"`
	Category         *string    `gorm:"column:category"`
	ReportURL        *string    `gorm:"column:report_url"`
	UploadedTime     *time.Time `gorm:"column:uploaded_time"`
	CreatedTime      *time.Time `gorm:"column:created_time;->"`
	LastUpdatedTime  *time.Time `gorm:"column:last_updated_time;->"`
}

// TableName overrides the gorm table name.
func (ESGMetaRow) TableName() string { return TableESGMeta }
