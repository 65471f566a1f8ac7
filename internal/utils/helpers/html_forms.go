package helpers

import (
	"fmt"
	"time"
)

func BuildSimpleHTML(title, body string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#2d74da; margin-top:0;">%s</h2>
                <div style="font-size:16px; color:#222;">%s</div>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">Письмо сгенерировано автоматически. Не отвечайте на него.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, title, body)
}

// BuildAdminPasswordHTML — письмо с новым паролем админки и сроком его действия.
func BuildAdminPasswordHTML(password string, expiresAt time.Time) string {
	body := fmt.Sprintf(`
      <p style="font-size:16px;color:#222;margin:0 0 16px 0;">Пароль входа в админку обновлён.</p>
      <p style="font-size:20px;font-weight:bold;letter-spacing:1px;background:#f3f6fb;padding:12px 16px;border-radius:6px;display:inline-block;">%s</p>
      <p style="font-size:14px;color:#555;">Действует до <strong>%s</strong>. Предыдущий пароль больше не работает.</p>
    `, password, expiresAt.Format("02.01.2006 15:04"))
	return BuildSimpleHTML("Новый пароль админки", body)
}

// BuildArticlePublishedHTML — письмо подписчикам о новой статье.
func BuildArticlePublishedHTML(title, link string) string {
	body := fmt.Sprintf(`
      <p style="font-size:16px;color:#222;margin:0 0 16px 0;"><strong>%s</strong></p>
      <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#2d74da;color:#fff;text-decoration:none;border-radius:6px;font-weight:600;">Читать статью</a></p>
      <p style="font-size:12px;color:#999;margin-top:16px;">Если кнопка не работает — скопируйте ссылку: %s</p>
    `, title, link, link)
	return BuildSimpleHTML("Новая статья на Bytevanta", body)
}
