package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"spkbot/internal/constants"
)

// ErrValidation помечает ошибки пользовательского ввода. Обработчики
// реагируют на них повторным приглашением, а не падением.
var ErrValidation = errors.New("некорректный ввод")

// amountCleaner вырезает пробелы (включая неразрывные), разделители
// тысяч и валютные слова, которые пользователи дописывают к сумме.
var amountCleaner = strings.NewReplacer(
	" ", "", " ", "", ",", "", ".", "",
	"so'm", "", "som", "", "sum", "", "сум", "",
)

// ParseClaimAmount нормализует и проверяет сумму покупки.
// "1 000 000 so'm" -> 1000000; отрицательные, нулевые и превышающие
// лимит суммы отклоняются.
func ParseClaimAmount(text string) (int64, error) {
	cleaned := amountCleaner.Replace(strings.ToLower(strings.TrimSpace(text)))
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: сумма должна быть числом", ErrValidation)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: сумма должна быть положительной", ErrValidation)
	}
	if amount > constants.MAX_CLAIM_AMOUNT {
		return 0, fmt.Errorf("%w: сумма превышает лимит %d", ErrValidation, constants.MAX_CLAIM_AMOUNT)
	}
	return amount, nil
}

// ParseBonusPercent проверяет процент бонуса администратора: целое в [1, 100].
func ParseBonusPercent(text string) (int, error) {
	percent, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: процент должен быть числом", ErrValidation)
	}
	if percent < constants.MIN_PERCENT || percent > constants.MAX_PERCENT {
		return 0, fmt.Errorf("%w: процент должен быть в диапазоне %d-%d",
			ErrValidation, constants.MIN_PERCENT, constants.MAX_PERCENT)
	}
	return percent, nil
}

// ParseDeductAmount проверяет сумму вычета: положительное целое, не
// превышающее текущий баланс. Хранилище перепроверит баланс ещё раз
// внутри транзакции.
func ParseDeductAmount(text string, currentBalance int64) (int64, error) {
	amount, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(text), " ", ""), 10, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("%w: сумма должна быть положительным числом", ErrValidation)
	}
	if amount > currentBalance {
		return 0, fmt.Errorf("%w: сумма превышает текущий баланс %d", ErrValidation, currentBalance)
	}
	return amount, nil
}

// ValidateName проверяет имя, введённое при регистрации.
func ValidateName(text string) (string, error) {
	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < constants.MIN_NAME_LENGTH {
		return "", fmt.Errorf("%w: имя слишком короткое", ErrValidation)
	}
	return name, nil
}
