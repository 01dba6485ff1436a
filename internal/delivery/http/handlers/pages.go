package handlers

import "fmt"

// User-facing pages for the Success/Fail redirects. Never authoritative for
// payment state; the access message is delivered by the bot.

func successPage(botUsername string) string {
	link := botLink(botUsername)
	if link == "" {
		return `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Оплата принята</title></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:2rem"><p>Оплата принята. Ваш доступ уже отправлен.</p></body>
</html>`
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Оплата принята</title>
</head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:2rem">
  <p style="margin-bottom:1.5rem;color:#333">Оплата принята. Ваш доступ уже отправлен — откройте чат, чтобы получить его.</p>
  <p><a style="display:inline-block;padding:12px 24px;background:#0088cc;color:#fff;text-decoration:none;border-radius:8px" href="%s">Открыть чат</a></p>
</body>
</html>`, link)
}

func failPage(botUsername string) string {
	link := botLink(botUsername)
	if link == "" {
		return `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Оплата не завершена</title></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:2rem"><p>Оплата не завершена. Вы можете попробовать ещё раз.</p></body>
</html>`
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Оплата не завершена</title>
</head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:2rem">
  <p style="margin-bottom:1.5rem;color:#333">Оплата не завершена. Вы можете попробовать ещё раз.</p>
  <p><a style="display:inline-block;padding:12px 24px;background:#0088cc;color:#fff;text-decoration:none;border-radius:8px" href="%s">Вернуться в чат</a></p>
</body>
</html>`, link)
}

func unverifiedPage() string {
	return `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:2rem">
  <p>Не удалось проверить оплату. Если деньги списались — напишите в поддержку.</p>
</body>
</html>`
}

func botLink(username string) string {
	if username == "" {
		return ""
	}
	return "https://t.me/" + username
}
