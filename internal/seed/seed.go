package seed

import (
	"clinic-management-server/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// testTypeCatalog is the default price list for lab and imaging services.
var testTypeCatalog = []models.TestType{
	// Lab tests
	{Name: "Blood Group", Price: 200, Category: models.CategoryLab},
	{Name: "Full Hemograms (FHG)", Price: 700, Category: models.CategoryLab},
	{Name: "HBA1C", Price: 1000, Category: models.CategoryLab},
	{Name: "Prostate Specific Antigen", Price: 1400, Category: models.CategoryLab},
	{Name: "Kidney Function Tests", Price: 1500, Category: models.CategoryLab},
	{Name: "Liver Function Test (LFTs)", Price: 2400, Category: models.CategoryLab},
	{Name: "Malaria (MRDT)", Price: 250, Category: models.CategoryLab},
	{Name: "Stool for O/C", Price: 250, Category: models.CategoryLab},
	{Name: "H Pylori Antigen", Price: 700, Category: models.CategoryLab},
	{Name: "H Pylori Antibody", Price: 700, Category: models.CategoryLab},
	{Name: "Urinalysis", Price: 200, Category: models.CategoryLab},
	{Name: "VDRL", Price: 250, Category: models.CategoryLab},
	{Name: "Pregnancy Test (PDT)", Price: 100, Category: models.CategoryLab},
	{Name: "Rheumatoid Factor (RF)", Price: 400, Category: models.CategoryLab},
	{Name: "Salmonella Antigen", Price: 500, Category: models.CategoryLab},
	{Name: "Lipid Profile", Price: 500, Category: models.CategoryLab},
	{Name: "Urea", Price: 300, Category: models.CategoryLab},
	{Name: "Calcium", Price: 400, Category: models.CategoryLab},
	{Name: "Sodium", Price: 300, Category: models.CategoryLab},
	{Name: "Potassium", Price: 300, Category: models.CategoryLab},
	{Name: "Cholesterol", Price: 300, Category: models.CategoryLab},
	{Name: "TSH", Price: 1300, Category: models.CategoryLab},
	{Name: "T4, T3", Price: 1500, Category: models.CategoryLab},
	{Name: "Creatinine", Price: 300, Category: models.CategoryLab},
	{Name: "Albumin (ALB)", Price: 300, Category: models.CategoryLab},
	{Name: "Total Protein (TP)", Price: 1000, Category: models.CategoryLab},
	{Name: "Bilirubin (Total & Direct)", Price: 600, Category: models.CategoryLab},
	{Name: "Electrolytes (NA, K, CL, CA)", Price: 1200, Category: models.CategoryLab},
	{Name: "ALT (GTP)", Price: 300, Category: models.CategoryLab},
	{Name: "AST (GOT)", Price: 300, Category: models.CategoryLab},
	{Name: "HB", Price: 150, Category: models.CategoryLab},
	{Name: "ESR", Price: 200, Category: models.CategoryLab},
	{Name: "Blood Sugar", Price: 150, Category: models.CategoryLab},
	{Name: "HIV", Price: 150, Category: models.CategoryLab},
	{Name: "BS for MPS", Price: 200, Category: models.CategoryLab},

	// Imaging tests
	{Name: "Shoulder X-Ray", Price: 1000, Category: models.CategoryImaging},
	{Name: "Humerus X-Ray", Price: 1000, Category: models.CategoryImaging},
	{Name: "Elbow X-Ray", Price: 550, Category: models.CategoryImaging},
	{Name: "Radioulnar X-Ray", Price: 550, Category: models.CategoryImaging},
	{Name: "Wrist X-Ray", Price: 550, Category: models.CategoryImaging},
	{Name: "Hand X-Ray", Price: 550, Category: models.CategoryImaging},
	{Name: "Clavicle X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Chest X-Ray", Price: 800, Category: models.CategoryImaging},
	{Name: "Abdomen X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Pelvic X-Ray", Price: 1000, Category: models.CategoryImaging},
	{Name: "Femur X-Ray", Price: 1000, Category: models.CategoryImaging},
	{Name: "Knee X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Tibia Fibula X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Ankle X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Foot X-Ray", Price: 700, Category: models.CategoryImaging},
	{Name: "Lumber Sacral X-Ray", Price: 1000, Category: models.CategoryImaging},
	{Name: "Obstetric U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Abd/Pelvic U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Breast U/S", Price: 1500, Category: models.CategoryImaging},
	{Name: "Thyroid U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Local U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Testicular U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Prostate U/S", Price: 1900, Category: models.CategoryImaging},
	{Name: "Doppler U/S", Price: 3000, Category: models.CategoryImaging},
}

// starterFormulary is a minimal set of common stock items so a fresh install
// has something to dispense against. Stock starts at zero; restocks go
// through pharmacy expenses.
var starterFormulary = []models.Medicine{
	{Name: "Paracetamol 500mg", BuyingPrice: 2, SellingPrice: 5, Unit: "tablet"},
	{Name: "Ibuprofen 400mg", BuyingPrice: 3, SellingPrice: 10, Unit: "tablet"},
	{Name: "Amoxicillin 500mg", BuyingPrice: 8, SellingPrice: 20, Unit: "capsule"},
	{Name: "Cetirizine 10mg", BuyingPrice: 2, SellingPrice: 5, Unit: "tablet"},
	{Name: "Metformin 500mg", BuyingPrice: 4, SellingPrice: 10, Unit: "tablet"},
	{Name: "Omeprazole 20mg", BuyingPrice: 5, SellingPrice: 15, Unit: "capsule"},
	{Name: "Amlodipine 5mg", BuyingPrice: 4, SellingPrice: 10, Unit: "tablet"},
	{Name: "ORS Sachet", BuyingPrice: 10, SellingPrice: 20, Unit: "sachet"},
	{Name: "Zinc Sulphate 20mg", BuyingPrice: 3, SellingPrice: 8, Unit: "tablet"},
	{Name: "Albendazole 400mg", BuyingPrice: 10, SellingPrice: 25, Unit: "tablet"},
}

// Catalog upserts the default test-type price list and the starter medicine
// formulary. Existing rows keep their prices and stock, so a clinic can
// adjust them without being overwritten on restart.
func Catalog(db *gorm.DB) error {
	testTypes := 0
	for _, tt := range testTypeCatalog {
		result := db.Where(models.TestType{Name: tt.Name}).FirstOrCreate(&models.TestType{
			Name:     tt.Name,
			Price:    tt.Price,
			Category: tt.Category,
		})
		if result.Error != nil {
			return result.Error
		}
		testTypes += int(result.RowsAffected)
	}

	medicines := 0
	for _, m := range starterFormulary {
		result := db.Where(models.Medicine{Name: m.Name}).FirstOrCreate(&models.Medicine{
			Name:         m.Name,
			BuyingPrice:  m.BuyingPrice,
			SellingPrice: m.SellingPrice,
			Unit:         m.Unit,
		})
		if result.Error != nil {
			return result.Error
		}
		medicines += int(result.RowsAffected)
	}

	logrus.WithFields(logrus.Fields{
		"testTypes": testTypes,
		"medicines": medicines,
	}).Info("Catalog seeded")
	return nil
}
