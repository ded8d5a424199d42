package models

import (
	"slices"

	"kb-admin/core/schema"
)

// Table names.
const (
	TableReports   = "reports"
	TableStandards = "standards"
	TableESGMeta   = "esg_meta"
)

// Languages are the accepted values of every language column.
var Languages = []string{"eng", "chi_sim", "chi_tra", "fra", "spa", "jpn", "kor"}

func id() schema.Field {
	return schema.Field{Name: schema.FieldID, Type: schema.TypeID, ReadOnly: true}
}

func text(name string, required bool) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeText, Required: required}
}

func date(name string, required bool) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeDate, Required: required}
}

func stamp(name string) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeTimestamp, ReadOnly: true}
}

func language() schema.Field {
	return schema.Field{Name: "language", Type: schema.TypeEnum, Options: slices.Clone(Languages)}
}

func link(name string) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeURL}
}

// Reports is the schema of the reports table.
func Reports() *schema.Schema {
	return &schema.Schema{
		Table: TableReports,
		Fields: []schema.Field{
			id(),
			text("title", true),
			text("issuing_organization", false),
			date("release_date", false),
			language(),
			link("url"),
			stamp(schema.FieldUploadedTime),
		},
		DefaultSort: schema.FieldUploadedTime,
		LabelField:  "title",
	}
}

// Standards is the schema of the standards table.
func Standards() *schema.Schema {
	return &schema.Schema{
		Table: TableStandards,
		Fields: []schema.Field{
			id(),
			text("title", true),
			text("issuing_organization", false),
			date("effective_date", true),
			date("expiration_date", false),
			text("standard_number", false),
			language(),
			link("url"),
			stamp(schema.FieldUploadedTime),
			stamp(schema.FieldLastUpdatedTime),
		},
		DefaultSort: schema.FieldLastUpdatedTime,
		LabelField:  "title",
	}
}

// ESGMeta is the schema of the esg_meta table.
func ESGMeta() *schema.Schema {
	return &schema.Schema{
		Table: TableESGMeta,
		Fields: []schema.Field{
			id(),
			text("country", false),
			text("company_name", true),
			text("company_short_name", false),
			text("report_title", true),
			date("publication_date", false),
			language(),
			text("category", false),
			link("report_url"),
			stamp(schema.FieldUploadedTime),
			stamp(schema.FieldCreatedTime),
			stamp(schema.FieldLastUpdatedTime),
		},
		DefaultSort: schema.FieldCreatedTime,
		LabelField:  "report_title",
	}
}

// All returns the schemas of every managed table, in menu order.
func All() []*schema.Schema {
	return []*schema.Schema{Reports(), Standards(), ESGMeta()}
}
