package model

import internalmodel "github.com/goliatone/go-jobform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
)

const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRuleMinItems  = internalmodel.ValidationRuleMinItems
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

const (
	WidgetText       = internalmodel.WidgetText
	WidgetNumber     = internalmodel.WidgetNumber
	WidgetSelect     = internalmodel.WidgetSelect
	WidgetCheckboxes = internalmodel.WidgetCheckboxes
	WidgetTextArea   = internalmodel.WidgetTextArea
	WidgetDateTime   = internalmodel.WidgetDateTime
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
