package schema

// Predefined returns the built-in master schemas that ship with the
// application. Their ids are stable so that re-initialization can skip
// schemas that already exist.
func Predefined() []*Schema {
	return []*Schema{
		{
			ID:                "buyer_master",
			Name:              "Buyer/Customer Master",
			Description:       "Manage all buyers and customers",
			Icon:              "👥",
			Category:          "other",
			EnableExcelUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "name", Label: "Buyer Name", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "contact_person", Label: "Contact Person", Type: FieldText, Order: 1},
				{ID: "3", Name: "email", Label: "Email", Type: FieldText, Order: 2},
				{ID: "4", Name: "phone", Label: "Phone", Type: FieldText, Order: 3},
				{ID: "5", Name: "address", Label: "Address", Type: FieldTextarea, Order: 4},
				{ID: "6", Name: "country", Label: "Country", Type: FieldText, Order: 5},
			},
		},
		{
			ID:                "supplier_master",
			Name:              "Supplier/Vendor Master",
			Description:       "Manage all suppliers and vendors",
			Icon:              "🏢",
			Category:          "other",
			EnableExcelUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "name", Label: "Supplier Name", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "contact_person", Label: "Contact Person", Type: FieldText, Order: 1},
				{ID: "3", Name: "email", Label: "Email", Type: FieldText, Order: 2},
				{ID: "4", Name: "phone", Label: "Phone", Type: FieldText, Order: 3},
				{ID: "5", Name: "address", Label: "Address", Type: FieldTextarea, Order: 4},
				{ID: "6", Name: "material_type", Label: "Material Type", Type: FieldText, Order: 5},
			},
		},
		{
			ID:                "fabric_master",
			Name:              "Fabric Master",
			Description:       "Manage fabric materials with all specifications",
			Icon:              "🧵",
			Category:          "material",
			EnableExcelUpload: true,
			EnableImageUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "sr_no", Label: "Serial No", Type: FieldNumber, Order: 0},
				{ID: "2", Name: "fabric_name", Label: "Fabric Name", Type: FieldText, Required: true, Order: 1},
				{ID: "3", Name: "fabric_type", Label: "Fabric Type", Type: FieldText, Order: 2},
				{ID: "4", Name: "composition", Label: "Composition", Type: FieldText, Order: 3},
				{ID: "5", Name: "gsm", Label: "GSM", Type: FieldText, Order: 4},
				{ID: "6", Name: "width", Label: "Width", Type: FieldText, Order: 5},
				{ID: "7", Name: "color", Label: "Color", Type: FieldText, Order: 6},
				{ID: "8", Name: "supplier", Label: "Supplier", Type: FieldText, Order: 7},
				{ID: "9", Name: "cost_per_unit", Label: "Cost per Unit", Type: FieldDecimal, Order: 8},
				{ID: "10", Name: "unit", Label: "Unit", Type: FieldDropdown, Options: []string{"meter", "kg", "yard"}, Order: 9},
				{ID: "11", Name: "final_item", Label: "Final Item", Type: FieldText, Order: 10},
			},
		},
		{
			ID:                "color_master",
			Name:              "Color Master",
			Description:       "Manage color codes and specifications",
			Icon:              "🎨",
			Category:          "other",
			EnableExcelUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "name", Label: "Color Name", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "code", Label: "Color Code", Type: FieldText, Order: 1},
				{ID: "3", Name: "hex_value", Label: "Hex Value", Type: FieldText, Order: 2},
				{ID: "4", Name: "pantone", Label: "Pantone Code", Type: FieldText, Order: 3},
			},
		},
		{
			ID:                "size_master",
			Name:              "Size Master",
			Description:       "Manage size specifications",
			Icon:              "📏",
			Category:          "other",
			EnableExcelUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "name", Label: "Size Name", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "category", Label: "Category", Type: FieldDropdown, Options: []string{"Clothing", "Shoes", "Accessories"}, Order: 1},
				{ID: "3", Name: "measurements", Label: "Measurements", Type: FieldText, Order: 2},
			},
		},
		{
			ID:                "article_master",
			Name:              "Article/Style Master",
			Description:       "Manage article and style specifications",
			Icon:              "👕",
			Category:          "production",
			EnableExcelUpload: true,
			EnableImageUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "code", Label: "Article Code", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "name", Label: "Article Name", Type: FieldText, Required: true, Order: 1},
				{ID: "3", Name: "description", Label: "Description", Type: FieldTextarea, Order: 2},
				{ID: "4", Name: "category", Label: "Category", Type: FieldText, Order: 3},
				{ID: "5", Name: "season", Label: "Season", Type: FieldDropdown, Options: []string{"Spring", "Summer", "Fall", "Winter"}, Order: 4},
			},
		},
		{
			ID:                "raw_material_master",
			Name:              "Raw Material Master",
			Description:       "Manage raw materials and components",
			Icon:              "📦",
			Category:          "material",
			EnableExcelUpload: true,
			Fields: []FieldDescriptor{
				{ID: "1", Name: "name", Label: "Material Name", Type: FieldText, Required: true, Order: 0},
				{ID: "2", Name: "type", Label: "Material Type", Type: FieldDropdown, Options: []string{"Fabric", "Trim", "Accessory", "Chemical"}, Order: 1},
				{ID: "3", Name: "supplier", Label: "Supplier", Type: FieldText, Order: 2},
				{ID: "4", Name: "unit_price", Label: "Unit Price", Type: FieldDecimal, Order: 3},
				{ID: "5", Name: "unit", Label: "Unit", Type: FieldText, Order: 4},
			},
		},
	}
}
