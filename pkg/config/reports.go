package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Правила, при которых рекомендация попадает в отчёт о затратах.
const (
	RuleAlways             = "always"
	RuleAgedEquipment      = "aged_equipment"
	RuleOverdueMaintenance = "overdue_maintenance"
	RuleOutOfService       = "out_of_service"
	RuleTopDepartment      = "top_department"
)

//go:embed recommendations.yaml
var defaultCatalogue []byte

type Recommendation struct {
	Rule string `yaml:"rule"`
	Text string `yaml:"text"`
}

// Catalogue - справочник рекомендаций для отчёта о затратах.
type Catalogue struct {
	AgedEquipmentYears int              `yaml:"aged_equipment_years"`
	Recommendations    []Recommendation `yaml:"recommendations"`
}

// LoadCatalogue читает справочник из файла; при пустом пути берётся встроенный.
func LoadCatalogue(path string) (*Catalogue, error) {
	data := defaultCatalogue
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать справочник рекомендаций: %w", err)
		}
		data = raw
	}
	return ParseCatalogue(data)
}

func ParseCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("неверный формат справочника рекомендаций: %w", err)
	}
	if c.AgedEquipmentYears <= 0 {
		c.AgedEquipmentYears = 10
	}
	for i, r := range c.Recommendations {
		switch r.Rule {
		case RuleAlways, RuleAgedEquipment, RuleOverdueMaintenance, RuleOutOfService, RuleTopDepartment:
		default:
			return nil, fmt.Errorf("рекомендация #%d: неизвестное правило %q", i+1, r.Rule)
		}
	}
	return &c, nil
}
