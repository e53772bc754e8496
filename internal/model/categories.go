package model

import "sort"

// TransferCategory is the synthetic category assigned to transfer
// transactions, which carry no user classification.
const TransferCategory = "Transfer"

// Categories is the built-in expense/income classification catalog,
// mapping each category to its subcategories. Values entered outside the
// catalog are accepted; this only drives suggestions.
var Categories = map[string][]string{
	"Transportation (Bangladesh)": {"Bus", "Train", "CNG / Auto Rickshaw", "Rickshaw", "Private Car", "Microbus", "Motorcycle", "Bicycle", "Launch / Ferry", "Ride Share (Uber / Pathao / Bolt)"},
	"Food":                        {"Fruits & Vegetables", "Meat & Fish", "Cooking", "Sauces & Pickles", "Dairy & Eggs", "Breakfast", "Snacks", "Beverages", "Frozen & Canned", "Diabetic Food", "Ice Cream"},
	"Cleaning Supplies":           {"Dishwashing", "Laundry", "Toilet Cleaners", "Floor & Glass", "Air Fresheners", "Trash Bags", "Shoe Care"},
	"Home & Kitchen":              {"Kitchen Accessories", "Appliances", "Tools & Hardware", "Lights & Electrical", "Gardening", "Organizer"},
	"Baby Care":                   {"Diapers", "Baby Food", "Skincare", "Oral Care", "Newborn Essentials"},
	"Personal Care":               {"Men's Care", "Women's Care", "Handwash", "Oral Care", "Skin Care", "Hair Products"},
	"Stationery & Office":         {"Writing", "Printing", "Paper Supplies", "Office Electronics", "School Supplies"},
	"Pet Care":                    {"Cat Food", "Dog Food", "Grooming", "Accessories"},
	"Health & Wellness":           {"Medicines", "Supplements", "Medical Devices", "Antiseptics", "Masks & Safety"},
	"Vehicle Essentials":          {"Fuel", "Service", "Insurance", "Parking", "Toll", "Spare Parts"},
}

// CategoryNames returns the catalog's category names sorted alphabetically.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for name := range Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
