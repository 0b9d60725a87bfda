package constants

// Роли отправителей. Ролей всего две: единственный администратор,
// заданный конфигурацией, и обычный пользователь.
const (
	ROLE_ADMIN = "admin"
	ROLE_USER  = "user"
)

// Состояния диалога (регистрация и подача заявки на кешбек).
const (
	STATE_IDLE         = "idle"
	STATE_REG_LANGUAGE = "reg_language"
	STATE_REG_NAME     = "reg_name"
	STATE_REG_PHONE    = "reg_phone"
	STATE_CLAIM_AMOUNT = "claim_amount"
	STATE_CLAIM_PHOTO  = "claim_photo"
)

// Состояния администраторских потоков. Они параллельны пользовательским:
// заявки других пользователей не блокируют ввод администратора.
const (
	STATE_ADMIN_BONUS_PERCENT     = "admin_bonus_percent"
	STATE_ADMIN_DEDUCT_AMOUNT     = "admin_deduct_amount"
	STATE_ADMIN_BROADCAST_CONTENT = "admin_broadcast_content"
	STATE_ADMIN_BROADCAST_CONFIRM = "admin_broadcast_confirm"
)

// Префиксы callback_data. Данные кнопки собираются как префикс + параметр.
const (
	CALLBACK_PREFIX_LANG          = "lang_"
	CALLBACK_PREFIX_CLAIM_APPROVE = "claim_ok_"
	CALLBACK_PREFIX_CLAIM_REJECT  = "claim_no_"
	CALLBACK_PREFIX_ADMIN_USER    = "admin_user_"
	CALLBACK_PREFIX_ADMIN_BONUS   = "admin_bonus_"
	CALLBACK_PREFIX_ADMIN_DEDUCT  = "admin_deduct_"
	CALLBACK_PREFIX_ADMIN_RESET   = "admin_reset_"
	CALLBACK_PREFIX_ADMIN_DELETE  = "admin_delete_"
	CALLBACK_PREFIX_ADMIN_HISTORY = "admin_history_"
	CALLBACK_PREFIX_DELETE_YES    = "confirm_delete_"
	CALLBACK_PREFIX_DELETE_NO     = "cancel_delete_"

	CALLBACK_MAIN_MENU         = "main_menu"
	CALLBACK_CASHBACK          = "cashback"
	CALLBACK_BALANCE           = "balance"
	CALLBACK_HISTORY           = "history"
	CALLBACK_LOCATION          = "location"
	CALLBACK_CONTACT           = "contact"
	CALLBACK_GROUP             = "group"
	CALLBACK_REFERRAL          = "referral"
	CALLBACK_CHANGE_LANGUAGE   = "change_language_main"
	CALLBACK_ADMIN_MAIN        = "admin_main_menu"
	CALLBACK_ADMIN_USERS       = "admin_panel_users"
	CALLBACK_ADMIN_STATS       = "admin_stats"
	CALLBACK_ADMIN_BROADCAST   = "admin_broadcast"
	CALLBACK_ADMIN_EXCEL       = "admin_excel"
	CALLBACK_BROADCAST_CONFIRM = "confirm_broadcast"
	CALLBACK_BROADCAST_CANCEL  = "cancel_broadcast"
)

// Виды записей леджера. Хранятся в колонке ledger.kind.
const (
	ENTRY_KIND_PURCHASE     = "purchase"
	ENTRY_KIND_REFERRAL     = "referral"
	ENTRY_KIND_ADMIN_BONUS  = "admin_bonus"
	ENTRY_KIND_ADMIN_DEDUCT = "admin_deduct"
)

// Ограничения на пользовательский ввод.
const (
	MIN_NAME_LENGTH  = 2
	MAX_CLAIM_AMOUNT = 100_000_000
	MIN_PERCENT      = 1
	MAX_PERCENT      = 100

	// Диапазон случайного процента кешбека при одобрении заявки (включительно).
	MIN_CASHBACK_PERCENT = 1
	MAX_CASHBACK_PERCENT = 5

	// Процент реферального бонуса от текущего баланса пригласившего.
	REFERRAL_BONUS_PERCENT = 1
)

// Локали, поддерживаемые ботом.
const (
	LOCALE_UZ      = "uz"
	LOCALE_RU      = "ru"
	DEFAULT_LOCALE = LOCALE_UZ
)

// Префикс реферальной нагрузки в /start: "ref_<chat_id>".
const REFERRAL_PAYLOAD_PREFIX = "ref_"
