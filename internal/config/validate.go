package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateParam, ParamConfig{})
	v.RegisterStructValidation(validateModules, Config{})
	return v
}

// validateParam requires a usable range on bounded parameters.
func validateParam(sl validator.StructLevel) {
	p := sl.Current().Interface().(ParamConfig)
	if p.Unbounded {
		return
	}
	if !(p.Max > p.Min) {
		sl.ReportError(p.Max, "Max", "max", "gtfield", "Min")
	}
}

// validateModules rejects duplicate module and parameter IDs.
func validateModules(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	seen := map[int64]bool{}
	for i, m := range c.Modules {
		if seen[m.ID] {
			sl.ReportError(m.ID, fmt.Sprintf("Modules[%d].ID", i), "id", "unique", "")
		}
		seen[m.ID] = true

		params := map[int]bool{}
		for j, p := range m.Params {
			if params[p.ID] {
				sl.ReportError(p.ID, fmt.Sprintf("Modules[%d].Params[%d].ID", i, j), "id", "unique", "")
			}
			params[p.ID] = true
		}
	}
	if c.MappingFile != "" {
		if _, err := FormatFor(c.MappingFile); err != nil {
			sl.ReportError(c.MappingFile, "MappingFile", "mapping_file", "ext", filepath.Ext(c.MappingFile))
		}
	}
}

// Validate checks the config after defaults and overrides are applied.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}
