package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"nuclear-grid-lab/internal/domain"
)

// glDocument matches the relevant subset of the ENTSO-E
// generation/load market document. Element names are matched by local name.
type glDocument struct {
	XMLName    xml.Name
	TimeSeries []glTimeSeries `xml:"TimeSeries"`
}

type glReason struct {
	Code string `xml:"code"`
	Text string `xml:"text"`
}

type glTimeSeries struct {
	MktPSRType *glMktPSRType `xml:"MktPSRType"`
	Periods    []glPeriod    `xml:"Period"`
}

type glMktPSRType struct {
	PSRType string `xml:"psrType"`
}

type glPeriod struct {
	Resolution string    `xml:"resolution"`
	Points     []glPoint `xml:"Point"`
}

type glPoint struct {
	Position int     `xml:"position"`
	Quantity float64 `xml:"quantity"`
}

// ParseGLDocument extracts observations from an ENTSO-E XML document.
// A Reason element anywhere in the document short-circuits into an APIError
// before any TimeSeries is touched. A document with zero points is an
// ErrEmptyDocument. The native interval resolution is read from the first
// Period (PT15M or PT60M); later periods do not change it.
func ParseGLDocument(data []byte) ([]domain.Observation, domain.Resolution, error) {
	if reason, err := findReason(data); err != nil {
		return nil, 0, fmt.Errorf("decode document: %w", err)
	} else if reason != nil {
		return nil, 0, &APIError{Reason: reason.Text}
	}

	var doc glDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("decode document: %w", err)
	}

	resolution := domain.Resolution(0)
	var observations []domain.Observation
	for _, ts := range doc.TimeSeries {
		psrType := domain.PSRTypeTotalLoad
		if ts.MktPSRType != nil && ts.MktPSRType.PSRType != "" {
			psrType = ts.MktPSRType.PSRType
		}

		for _, period := range ts.Periods {
			if resolution == 0 {
				resolution = domain.ResolutionHourly
				if period.Resolution == "PT15M" {
					resolution = domain.ResolutionQuarterHour
				}
			}
			for _, point := range period.Points {
				obs, err := domain.NewObservation(point.Position, point.Quantity, psrType, "")
				if err != nil {
					return nil, 0, fmt.Errorf("point %d: %w", point.Position, err)
				}
				observations = append(observations, obs)
			}
		}
	}

	if len(observations) == 0 {
		return nil, 0, ErrEmptyDocument
	}
	return observations, resolution, nil
}

// findReason scans the token stream for a Reason element at any depth.
// Acknowledgement documents carry it at the root, but providers have been
// seen embedding it inside a TimeSeries of an otherwise well-formed
// document, and data next to a Reason must never be trusted.
func findReason(data []byte) (*glReason, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "Reason" {
			var reason glReason
			if err := dec.DecodeElement(&reason, &start); err != nil {
				return nil, err
			}
			return &reason, nil
		}
	}
}
