// Package inference загружает артефакт регрессионной модели и выполняет прогноз.
//
// Артефакт — это JSON-файл с коэффициентами, экспортированными после обучения:
// имена признаков, вектор коэффициентов и свободный член. Файл читается один раз
// при старте процесса; отсутствующий или несовместимый артефакт — фатальная
// ошибка инициализации, запасного варианта нет.
package inference

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/jemin1834/orders-prediction/internal/lib/features"
)

// Artifact описывает содержимое файла модели.
type Artifact struct {
	ModelVersion string    `json:"model_version"`
	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Model — загруженная регрессионная модель, готовая к прогнозам.
// Прогноз чистый и детерминированный: одному вектору признаков
// всегда соответствует одно и то же число заказов.
type Model struct {
	version      string
	coefficients *mat.VecDense
	intercept    float64
}

// Load читает артефакт модели из файла и проверяет его совместимость
// со схемой признаков. Вызывается один раз при инициализации приложения.
func Load(path string) (*Model, error) {
	const op = "inference.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(artifact.FeatureNames) != len(features.Names) {
		return nil, fmt.Errorf("%s: artifact has %d features, want %d",
			op, len(artifact.FeatureNames), len(features.Names))
	}
	for i, name := range artifact.FeatureNames {
		if name != features.Names[i] {
			return nil, fmt.Errorf("%s: feature %d is %q, want %q",
				op, i, name, features.Names[i])
		}
	}
	if len(artifact.Coefficients) != len(artifact.FeatureNames) {
		return nil, fmt.Errorf("%s: artifact has %d coefficients for %d features",
			op, len(artifact.Coefficients), len(artifact.FeatureNames))
	}

	return &Model{
		version:      artifact.ModelVersion,
		coefficients: mat.NewVecDense(len(artifact.Coefficients), artifact.Coefficients),
		intercept:    artifact.Intercept,
	}, nil
}

// Version возвращает версию загруженного артефакта.
func (m *Model) Version() string {
	return m.version
}

// Predict возвращает прогноз числа заказов для вектора признаков.
// Результат округляется до целого и не бывает отрицательным.
func (m *Model) Predict(v features.Vector) int {
	x := mat.NewVecDense(m.coefficients.Len(), v.Values())
	raw := mat.Dot(m.coefficients, x) + m.intercept

	predicted := int(math.Round(raw))
	if predicted < 0 {
		predicted = 0
	}
	return predicted
}
