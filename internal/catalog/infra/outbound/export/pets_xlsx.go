package export

import (
	"fmt"
	"io"
	"strings"

	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/xuri/excelize/v2"
)

const petsSheet = "Pets"

// PetColumns son las cabeceras de la hoja, en orden.
var PetColumns = []string{"ID", "Name", "Species", "Breed", "Size", "Gender", "Age (months)", "Shelter", "City", "Tags", "Created"}

// ContentType de la respuesta HTTP.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WritePets escribe las mascotas en una hoja xlsx, en el orden recibido.
func WritePets(w io.Writer, pets []*catalogDomain.Pet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), petsSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(petsSheet)
	if err != nil {
		return fmt.Errorf("failed to open xlsx stream: %w", err)
	}

	header := make([]interface{}, len(PetColumns))
	for i, c := range PetColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, p := range pets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, petRow(p)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

func petRow(p *catalogDomain.Pet) []interface{} {
	var species, breed, shelter, city string
	if p.Species != nil {
		species = p.Species.Name
	}
	if p.Breed != nil {
		breed = p.Breed.Name
		if species == "" && p.Breed.Species != nil {
			species = p.Breed.Species.Name
		}
	}
	if p.Shelter != nil {
		shelter = p.Shelter.Name
		if p.Shelter.City != nil {
			city = *p.Shelter.City
		}
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}

	return []interface{}{
		p.ID.String(),
		p.Name,
		species,
		breed,
		p.Size,
		p.Gender,
		p.AgeMonths,
		shelter,
		city,
		strings.Join(tags, ", "),
		p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
