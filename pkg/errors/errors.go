// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 引数エラーは ErrInvalidArgument でマークされ、errors.Is で判定できます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = defaultWarningHandler
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// defaultWarningHandler は標準のロガーに警告を出します。
func defaultWarningHandler(w error) {
	log.Printf("gohmm-Warning: %v\n", w)
}

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// nil を渡すとデフォルトのハンドラに戻ります。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if handler == nil {
		handler = defaultWarningHandler
	}
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ImpossibleSequenceWarning は観測系列の尤度が0（対数尤度 -Inf）になった場合の警告です。
type ImpossibleSequenceWarning struct {
	Op     string
	Length int
}

func (w *ImpossibleSequenceWarning) Error() string {
	return fmt.Sprintf("%s: observation sequence of length %d has zero probability under the model", w.Op, w.Length)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ImpossibleSequenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("length", w.Length).
		Str("type", "ImpossibleSequenceWarning")
}

// NewImpossibleSequenceWarning は新しいImpossibleSequenceWarningを作成します。
func NewImpossibleSequenceWarning(op string, length int) *ImpossibleSequenceWarning {
	return &ImpossibleSequenceWarning{Op: op, Length: length}
}

// RenormalizationWarning は確率行の合計が1からわずかにずれていたため正規化し直した場合の警告です。
type RenormalizationWarning struct {
	Matrix string
	Row    int
	Sum    float64
}

func (w *RenormalizationWarning) Error() string {
	return fmt.Sprintf("%s row %d sums to %.12g; renormalized to 1", w.Matrix, w.Row, w.Sum)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *RenormalizationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("matrix", w.Matrix).
		Int("row", w.Row).
		Float64("sum", w.Sum).
		Str("type", "RenormalizationWarning")
}

// NewRenormalizationWarning は新しいRenormalizationWarningを作成します。
func NewRenormalizationWarning(matrix string, row int, sum float64) *RenormalizationWarning {
	return &RenormalizationWarning{Matrix: matrix, Row: row, Sum: sum}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ErrInvalidArgument は呼び出し境界で検出された不正な引数を表すマーカーです。
// nil の観測系列、次元の不一致、正でない状態数・シンボル数などが該当します。
var ErrInvalidArgument = errors.New("invalid argument")

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("gohmm: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースと ErrInvalidArgument マークを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.Mark(errors.WithStack(err), ErrInvalidArgument)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gohmm: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースと ErrInvalidArgument マークを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.Mark(errors.WithStack(err), ErrInvalidArgument)
}

// NewMissingArgumentError は必須引数が nil の場合の ValidationError を返します。
func NewMissingArgumentError(param string) error {
	err := &ValidationError{ParamName: param, Reason: "required argument is nil", Value: nil}
	return errors.Mark(errors.WithStack(err), ErrInvalidArgument)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gohmm: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gohmm: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("gohmm: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN や +Inf を検出します。-Inf は確率0の正当な表現なので対象外です。
type NumericalInstabilityError struct {
	Operation string                 // 発生した操作（例: "emissions", "transitions"）
	Values    []float64              // 問題のある値
	Context   map[string]interface{} // デバッグ用の追加コンテキスト情報
	Iteration int                    // 発生した行番号または時刻
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("gohmm: numerical instability detected in %s at index %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
		Context:   make(map[string]interface{}),
	}
	return errors.Mark(errors.WithStack(err), ErrInvalidArgument)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// MarkInvalidArgument は任意のエラー（multierror など）に ErrInvalidArgument マークを付与します。
func MarkInvalidArgument(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.WithStack(err), ErrInvalidArgument)
}

// IsInvalidArgument は err が引数エラーとしてマークされているかを返します。
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrImpossibleSequence は観測系列の確率が0の場合のエラーです。
	ErrImpossibleSequence = New("observation sequence has zero probability")
)
