package model

// Schemas for the four record kinds. Derived fields are recomputed by the
// derive package after every accepted base-field mutation; they are never
// user-writable.

var budgetSchema = Schema{
	Kind:     KindBudget,
	SeqField: "srNo",
	Section:  "section",
	Fields: []FieldSpec{
		{Name: "section", Kind: FieldText, Default: "General"},
		{Name: "details", Kind: FieldText, Default: ""},
		{Name: "monthlyCost", Kind: FieldNumeric, Default: 0.0},
		{Name: "remarks", Kind: FieldText, Default: ""},
		{Name: "quarterlyCost", Kind: FieldNumeric, Derived: true},
		{Name: "halfYearlyCost", Kind: FieldNumeric, Derived: true},
		{Name: "annualCost", Kind: FieldNumeric, Derived: true},
	},
}

var projectTrackingSchema = Schema{
	Kind:     KindProjectTracking,
	SeqField: "slNo",
	Fields: []FieldSpec{
		{Name: "projectName", Kind: FieldText, Default: ""},
		{Name: "clientName", Kind: FieldText, Default: ""},
		{Name: "salary", Kind: FieldNumeric, Default: 0.0},
		{Name: "startDate", Kind: FieldDate, Default: ""},
		{Name: "endedDate", Kind: FieldDate, Default: ""},
		{Name: "resources", Kind: FieldNumeric, Default: 1.0},
		{Name: "projectCost", Kind: FieldNumeric, Default: 0.0},
		{Name: "collectAmount", Kind: FieldNumeric, Default: 0.0},
		{Name: "daysInvolved", Kind: FieldNumeric, Derived: true},
		{Name: "perDayAmount", Kind: FieldNumeric, Derived: true},
		{Name: "investDayAmount", Kind: FieldNumeric, Derived: true},
		{Name: "hoursDays", Kind: FieldNumeric, Derived: true},
		{Name: "perHrsAmount", Kind: FieldNumeric, Derived: true},
		{Name: "pendingAmount", Kind: FieldNumeric, Derived: true},
		{Name: "profitForProject", Kind: FieldNumeric, Derived: true},
	},
}

var subscriptionModelSchema = Schema{
	Kind:     KindSubscriptionModel,
	SeqField: "slNo",
	Fields: []FieldSpec{
		{Name: "planName", Kind: FieldText, Default: ""},
		{Name: "description", Kind: FieldText, Default: ""},
		{Name: "monthlyPrice", Kind: FieldNumeric, Default: 0.0},
	},
}

var subscriptionRevenueSchema = Schema{
	Kind:     KindSubscriptionRevenue,
	SeqField: "slNo",
	Fields: []FieldSpec{
		{Name: "clientName", Kind: FieldText, Default: ""},
		{Name: "projectedMonthlyRevenue", Kind: FieldNumeric, Default: 0.0},
		{Name: "projectedAnnualRevenue", Kind: FieldNumeric, Derived: true},
	},
}

var schemasByKind = map[Kind]Schema{
	KindBudget:              budgetSchema,
	KindProjectTracking:     projectTrackingSchema,
	KindSubscriptionModel:   subscriptionModelSchema,
	KindSubscriptionRevenue: subscriptionRevenueSchema,
}

// SchemaFor returns the schema for a kind. It panics on an unknown kind
// because kinds are a closed, compile-time set.
func SchemaFor(kind Kind) Schema {
	s, ok := schemasByKind[kind]
	if !ok {
		panic("model: no schema for kind " + string(kind))
	}
	return s
}
