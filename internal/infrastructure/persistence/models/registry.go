package models

// All returns every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&ProjectModel{},
		&HouseholdModel{},
		&BeneficiaryModel{},
		&AssistanceTypeModel{},
		&EntitlementModel{},
		&DistributionModel{},
		&DistributionRecordModel{},
		&AuditLogModel{},
	}
}
