package settings

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"badrefining/pkg/domain"
)

// ErrUnsupportedFormat is returned for resource names whose extension has no codec.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Codec converts Settings to and from a persisted representation. Decode
// starts from domain.DefaultSettings, so fields absent from the payload keep
// their defaults.
type Codec interface {
	Name() string
	ContentType() string
	Encode(domain.Settings) ([]byte, error)
	Decode([]byte) (domain.Settings, error)
}

// CodecFor selects a codec from the extension of name.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".xml":
		return xmlCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	case ".json":
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

type xmlCodec struct{}

// xmlSettings mirrors the element-per-field layout written by the original
// mod. Pointer fields distinguish absent elements from zero values.
type xmlSettings struct {
	XMLName xml.Name

	ProductionBlockOperationalPowerConsumptionFactor *float32 `xml:"ProductionBlockOperationalPowerConsumptionFactor"`
	ProductionBlockStandbyPowerConsumptionFactor     *float32 `xml:"ProductionBlockStandbyPowerConsumptionFactor"`
	OxygenGeneratorIceConsumptionFactor              *float32 `xml:"OxygenGeneratorIceConsumptionFactor"`
	OxygenGeneratorIceToGasRatioFactor               *float32 `xml:"OxygenGeneratorIceToGasRatioFactor"`
	OxygenFarmMaxGasOutputFactor                     *float32 `xml:"OxygenFarmMaxGasOutputFactor"`
	LargeRefineryIngotYieldFactor                    *float32 `xml:"LargeRefineryIngotYieldFactor"`
	StoneOreToIngotYieldFactor                       *float32 `xml:"StoneOreToIngotYieldFactor"`
	StoneOreToIngotSurvivalKitYieldFactor            *float32 `xml:"StoneOreToIngotSurvivalKitYieldFactor"`

	YieldFactorOverrides *xmlOverrides `xml:"YieldFactorOverrides"`
}

type xmlOverrides struct {
	Items []xmlOverride `xml:"BlueprintYieldFactor"`
}

type xmlOverride struct {
	BlueprintName string  `xml:"BlueprintName"`
	YieldFactor   float32 `xml:"YieldFactor"`
}

const xmlRootElement = "ModSettings"

func (xmlCodec) Name() string        { return "xml" }
func (xmlCodec) ContentType() string { return "application/xml" }

func (xmlCodec) Encode(s domain.Settings) ([]byte, error) {
	doc := xmlSettings{
		XMLName: xml.Name{Local: xmlRootElement},

		ProductionBlockOperationalPowerConsumptionFactor: &s.ProductionBlockOperationalPowerConsumptionFactor,
		ProductionBlockStandbyPowerConsumptionFactor:     &s.ProductionBlockStandbyPowerConsumptionFactor,
		OxygenGeneratorIceConsumptionFactor:              &s.OxygenGeneratorIceConsumptionFactor,
		OxygenGeneratorIceToGasRatioFactor:               &s.OxygenGeneratorIceToGasRatioFactor,
		OxygenFarmMaxGasOutputFactor:                     &s.OxygenFarmMaxGasOutputFactor,
		LargeRefineryIngotYieldFactor:                    &s.LargeRefineryIngotYieldFactor,
		StoneOreToIngotYieldFactor:                       &s.StoneOreToIngotYieldFactor,
		StoneOreToIngotSurvivalKitYieldFactor:            &s.StoneOreToIngotSurvivalKitYieldFactor,
		YieldFactorOverrides:                             &xmlOverrides{},
	}
	for _, o := range s.YieldFactorOverrides {
		doc.YieldFactorOverrides.Items = append(doc.YieldFactorOverrides.Items, xmlOverride(o))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (xmlCodec) Decode(data []byte) (domain.Settings, error) {
	var doc xmlSettings
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = passThroughCharset
	if err := dec.Decode(&doc); err != nil {
		return domain.Settings{}, fmt.Errorf("decode xml: %w", err)
	}
	out := domain.DefaultSettings()
	assign := func(dst *float32, src *float32) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&out.ProductionBlockOperationalPowerConsumptionFactor, doc.ProductionBlockOperationalPowerConsumptionFactor)
	assign(&out.ProductionBlockStandbyPowerConsumptionFactor, doc.ProductionBlockStandbyPowerConsumptionFactor)
	assign(&out.OxygenGeneratorIceConsumptionFactor, doc.OxygenGeneratorIceConsumptionFactor)
	assign(&out.OxygenGeneratorIceToGasRatioFactor, doc.OxygenGeneratorIceToGasRatioFactor)
	assign(&out.OxygenFarmMaxGasOutputFactor, doc.OxygenFarmMaxGasOutputFactor)
	assign(&out.LargeRefineryIngotYieldFactor, doc.LargeRefineryIngotYieldFactor)
	assign(&out.StoneOreToIngotYieldFactor, doc.StoneOreToIngotYieldFactor)
	assign(&out.StoneOreToIngotSurvivalKitYieldFactor, doc.StoneOreToIngotSurvivalKitYieldFactor)
	if doc.YieldFactorOverrides != nil {
		out.YieldFactorOverrides = make([]domain.YieldFactorOverride, 0, len(doc.YieldFactorOverrides.Items))
		for _, item := range doc.YieldFactorOverrides.Items {
			out.YieldFactorOverrides = append(out.YieldFactorOverrides, domain.YieldFactorOverride(item))
		}
	}
	return out, nil
}

// passThroughCharset accepts the utf-16 label written by the game's XML
// serializer even though the file content is stored as UTF-8.
func passThroughCharset(label string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(label, "utf-16") {
		return input, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

type yamlCodec struct{}

func (yamlCodec) Name() string        { return "yaml" }
func (yamlCodec) ContentType() string { return "application/yaml" }

func (yamlCodec) Encode(s domain.Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

func (yamlCodec) Decode(data []byte) (domain.Settings, error) {
	out := domain.DefaultSettings()
	if err := yaml.Unmarshal(data, &out); err != nil {
		return domain.Settings{}, fmt.Errorf("decode yaml: %w", err)
	}
	return out, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string        { return "json" }
func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Encode(s domain.Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (domain.Settings, error) {
	out := domain.DefaultSettings()
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.Settings{}, fmt.Errorf("decode json: %w", err)
	}
	return out, nil
}
