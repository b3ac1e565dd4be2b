package database

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rxtrack/rxtrack-api/config"
	"github.com/rxtrack/rxtrack-api/internal/domain"
	"github.com/rxtrack/rxtrack-api/internal/domain/record"
)

func intPtr(v int) *int { return &v }

func datePtr(d record.Date) *record.Date { return &d }

// Seed provisions the admin login and a handful of sample rows so a fresh
// development database is usable immediately. Each seeder is idempotent:
// it only writes when its table is empty (or the admin user is missing).
func Seed(db *gorm.DB, cfg config.SeedConfig, log *zap.Logger) error {
	if err := seedAdminUser(db, cfg); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := seedPrescriptions(db); err != nil {
		return fmt.Errorf("seeding prescriptions: %w", err)
	}
	if err := seedHistory(db); err != nil {
		return fmt.Errorf("seeding history: %w", err)
	}
	log.Info("seed data ensured", zap.String("admin", cfg.AdminUsername))
	return nil
}

func seedAdminUser(db *gorm.DB, cfg config.SeedConfig) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&domain.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}).Error
}

func seedPrescriptions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&record.Prescription{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := []record.Prescription{
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 2), PatientName: "Alice Rahman", PatientAge: intPtr(28), PatientGender: "Female", Diagnosis: "Fever", Medicines: "Paracetamol 500mg", NextVisitDate: datePtr(record.NewDate(2025, 5, 9))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 5), PatientName: "Hasan Karim", PatientAge: intPtr(40), PatientGender: "Male", Diagnosis: "High Blood Pressure", Medicines: "Amlodipine 5mg", NextVisitDate: datePtr(record.NewDate(2025, 5, 20))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 10), PatientName: "Sara Ahmed", PatientAge: intPtr(35), PatientGender: "Female", Diagnosis: "Diabetes", Medicines: "Metformin 500mg", NextVisitDate: datePtr(record.NewDate(2025, 5, 24))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 15), PatientName: "Rafiq Hossain", PatientAge: intPtr(50), PatientGender: "Male", Diagnosis: "Arthritis", Medicines: "Ibuprofen 400mg", NextVisitDate: datePtr(record.NewDate(2025, 5, 30))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 18), PatientName: "Maya Akter", PatientAge: intPtr(22), PatientGender: "Female", Diagnosis: "Cold", Medicines: "Cetirizine 10mg", NextVisitDate: datePtr(record.NewDate(2025, 5, 25))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 21), PatientName: "Shahidul Islam", PatientAge: intPtr(60), PatientGender: "Male", Diagnosis: "Back Pain", Medicines: "Diclofenac 50mg", NextVisitDate: datePtr(record.NewDate(2025, 6, 5))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 5, 25), PatientName: "Fatema Begum", PatientAge: intPtr(30), PatientGender: "Female", Diagnosis: "Migraine", Medicines: "Sumatriptan 50mg", NextVisitDate: datePtr(record.NewDate(2025, 6, 2))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 6, 1), PatientName: "Nadia Parveen", PatientAge: intPtr(27), PatientGender: "Female", Diagnosis: "Asthma", Medicines: "Salbutamol Inhaler", NextVisitDate: datePtr(record.NewDate(2025, 6, 15))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 6, 9), PatientName: "Mahmudul Hasan", PatientAge: intPtr(52), PatientGender: "Male", Diagnosis: "Diabetes", Medicines: "Insulin 10IU", NextVisitDate: datePtr(record.NewDate(2025, 6, 30))}},
		{Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 4), PatientName: "Rashed Ahmed", PatientAge: intPtr(34), PatientGender: "Male", Diagnosis: "Hypertension", Medicines: "Amlodipine 5mg", NextVisitDate: datePtr(record.NewDate(2025, 7, 20))}},
	}
	return db.Create(&rows).Error
}

func seedHistory(db *gorm.DB) error {
	var count int64
	if err := db.Model(&record.History{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := []record.History{
		{ID: 100, Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 10), PatientName: "Sabbir Hossain", PatientAge: intPtr(55), PatientGender: "Male", Diagnosis: "Arthritis", Medicines: "Ibuprofen 400mg", NextVisitDate: datePtr(record.NewDate(2025, 7, 25))}},
		{ID: 220, Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 14), PatientName: "Tania Akter", PatientAge: intPtr(31), PatientGender: "Female", Diagnosis: "Asthma", Medicines: "Salbutamol Inhaler", NextVisitDate: datePtr(record.NewDate(2025, 7, 28))}},
		{ID: 300, Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 18), PatientName: "Fahim Rahman", PatientAge: intPtr(42), PatientGender: "Male", Diagnosis: "Cold", Medicines: "Cetirizine 10mg", NextVisitDate: datePtr(record.NewDate(2025, 7, 26))}},
		{ID: 600, Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 22), PatientName: "Mousumi Sultana", PatientAge: intPtr(36), PatientGender: "Female", Diagnosis: "Anemia", Medicines: "Iron Supplement", NextVisitDate: datePtr(record.NewDate(2025, 8, 1))}},
		{ID: 123, Fields: record.Fields{PrescriptionDate: record.NewDate(2025, 7, 25), PatientName: "Rezaul Karim", PatientAge: intPtr(50), PatientGender: "Male", Diagnosis: "Fever", Medicines: "Paracetamol 500mg", NextVisitDate: datePtr(record.NewDate(2025, 8, 5))}},
	}
	return db.Create(&rows).Error
}
