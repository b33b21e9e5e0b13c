// Package shiftsvc - Test NextEligibleLevel: escalate chỉ tiến, nhảy trong tập allowed.
package shiftsvc

import (
	"testing"

	"pharmastaff/internal/api/shift/models"
)

func TestNextEligibleLevel_StepToAdjacentTier(t *testing.T) {
	allowed := []string{
		models.LevelFullPartTime,
		models.LevelLocumCasual,
		models.LevelOwnerChain,
		models.LevelOrgChain,
		models.LevelPlatform,
	}

	next, ok := NextEligibleLevel(models.LevelFullPartTime, allowed)
	if !ok {
		t.Fatal("NextEligibleLevel trả về false khi vẫn còn tier được phép phía trên")
	}
	if next.Key != models.LevelLocumCasual {
		t.Errorf("tier kế tiếp phải là %s, nhận được %s", models.LevelLocumCasual, next.Key)
	}
}

func TestNextEligibleLevel_SkipsDisallowedTiers(t *testing.T) {
	// OWNER_CHAIN và ORG_CHAIN không nằm trong allowed: escalate từ LOCUM_CASUAL
	// phải nhảy thẳng tới PLATFORM, không dừng ở tier trung gian.
	allowed := []string{
		models.LevelFullPartTime,
		models.LevelLocumCasual,
		models.LevelPlatform,
	}

	next, ok := NextEligibleLevel(models.LevelLocumCasual, allowed)
	if !ok {
		t.Fatal("NextEligibleLevel trả về false khi PLATFORM vẫn còn trong allowed")
	}
	if next.Key != models.LevelPlatform {
		t.Errorf("tier kế tiếp phải là %s, nhận được %s", models.LevelPlatform, next.Key)
	}
}

func TestNextEligibleLevel_CeilingReturnsFalse(t *testing.T) {
	allowed := []string{models.LevelFullPartTime, models.LevelPlatform}

	if _, ok := NextEligibleLevel(models.LevelPlatform, allowed); ok {
		t.Error("NextEligibleLevel phải trả về false khi ca đã ở PLATFORM")
	}

	// Trần cũng có thể thấp hơn PLATFORM nếu allowed không chứa tier cao hơn
	if _, ok := NextEligibleLevel(models.LevelLocumCasual, []string{models.LevelFullPartTime, models.LevelLocumCasual}); ok {
		t.Error("NextEligibleLevel phải trả về false khi không còn tier được phép phía trên")
	}
}

func TestNextEligibleLevel_AlwaysMonotonic(t *testing.T) {
	allowed := []string{
		models.LevelFullPartTime,
		models.LevelLocumCasual,
		models.LevelOwnerChain,
		models.LevelOrgChain,
		models.LevelPlatform,
	}

	// Lặp escalate từ tier thấp nhất: rank phải tăng nghiêm ngặt cho tới khi hết tier
	current := models.LevelFullPartTime
	steps := 0
	for {
		next, ok := NextEligibleLevel(current, allowed)
		if !ok {
			break
		}
		if models.LevelRank(next.Key) <= models.LevelRank(current) {
			t.Fatalf("escalate phải tăng rank: %s (rank %d) -> %s (rank %d)",
				current, models.LevelRank(current), next.Key, models.LevelRank(next.Key))
		}
		current = next.Key
		steps++
		if steps > len(models.EscalationLevels) {
			t.Fatal("escalate lặp vô hạn, rank không tiến")
		}
	}
	if current != models.LevelPlatform {
		t.Errorf("chuỗi escalate đầy đủ phải kết thúc ở PLATFORM, kết thúc ở %s", current)
	}
	if steps != 4 {
		t.Errorf("với allowed đủ 5 tier phải có đúng 4 bước escalate, có %d", steps)
	}
}

func TestNextEligibleLevel_UnknownCurrentStartsFromBottom(t *testing.T) {
	// CurrentLevel không hợp lệ (rank -1) thì tier kế tiếp là tier được phép thấp nhất
	allowed := []string{models.LevelLocumCasual, models.LevelPlatform}

	next, ok := NextEligibleLevel("", allowed)
	if !ok {
		t.Fatal("NextEligibleLevel trả về false với current rỗng")
	}
	if next.Key != models.LevelLocumCasual {
		t.Errorf("tier kế tiếp phải là %s, nhận được %s", models.LevelLocumCasual, next.Key)
	}
}
